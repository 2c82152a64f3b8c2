package rest

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
	"file-manager-api/internal/domain/file"
)

type FakeFileService struct {
	ListFilesFunc func(ctx context.Context, identityID string) (file.Files, error)
	UploadFunc    func(ctx context.Context, identityID string, in *multipart.FileHeader) (*file.File, error)
	DownloadFunc  func(ctx context.Context, identityID string, id file.ID) (*ports.Download, error)
	DeleteFunc    func(ctx context.Context, identityID string, id file.ID) error

	UploadCalls int
}

func (f *FakeFileService) ListFiles(ctx context.Context, identityID string) (file.Files, error) {
	if f.ListFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListFilesFunc(ctx, identityID)
}
func (f *FakeFileService) Upload(ctx context.Context, identityID string, in *multipart.FileHeader) (*file.File, error) {
	f.UploadCalls++
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, identityID, in)
}
func (f *FakeFileService) Download(ctx context.Context, identityID string, id file.ID) (*ports.Download, error) {
	if f.DownloadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DownloadFunc(ctx, identityID, id)
}
func (f *FakeFileService) Delete(ctx context.Context, identityID string, id file.ID) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, identityID, id)
}

const testMaxUpload = int64(1 << 10)

func setupFileRouter(svc ports.FileService) *gin.Engine {
	r := newTestRouter()
	NewFileController(r, svc, zap.NewNop(), fakeAuth, testMaxUpload)
	return r
}

func TestFileController_ListFiles(t *testing.T) {
	t.Run("empty list is an array", func(t *testing.T) {
		r := setupFileRouter(&FakeFileService{ListFilesFunc: func(context.Context, string) (file.Files, error) {
			return file.Files{}, nil
		}})

		rr := doReq(t, r, http.MethodGet, RouteDashboard, nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"files":[]}`, rr.Body.String())
	})

	t.Run("files", func(t *testing.T) {
		r := setupFileRouter(&FakeFileService{ListFilesFunc: func(_ context.Context, id string) (file.Files, error) {
			require.Equal(t, testIdentity, id)
			return file.Files{{FileID: 3, UserID: 17, OriginalFilename: "doc.pdf", StoragePath: "17/x.pdf", UploadedAt: time.Now()}}, nil
		}})

		rr := doReq(t, r, http.MethodGet, RouteDashboard, nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		files := decodeBody(t, rr)["files"].([]any)
		require.Len(t, files, 1)
		assert.EqualValues(t, 3, files[0].(map[string]any)["fileid"])
		assert.NotContains(t, rr.Body.String(), "17/x.pdf")
	})

	t.Run("service error", func(t *testing.T) {
		r := setupFileRouter(&FakeFileService{ListFilesFunc: func(context.Context, string) (file.Files, error) {
			return nil, errors.New("db down")
		}})

		rr := doReq(t, r, http.MethodGet, RouteDashboard, nil, nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "failed to fetch files", decodeBody(t, rr)["error"])
	})
}

func TestFileController_Upload(t *testing.T) {
	okUpload := func(_ context.Context, _ string, fh *multipart.FileHeader) (*file.File, error) {
		return &file.File{FileID: 9, UserID: 17, OriginalFilename: fh.Filename, SizeBytes: fh.Size, MimeType: "text/plain"}, nil
	}

	tests := []struct {
		name       string
		field      string
		content    []byte
		upload     func(ctx context.Context, identityID string, in *multipart.FileHeader) (*file.File, error)
		wantStatus int
		wantCalls  int
	}{
		{name: "no file part", field: "", wantStatus: http.StatusBadRequest},
		{name: "wrong field name", field: "attachment", content: []byte("x"), wantStatus: http.StatusBadRequest},
		{name: "too large", field: "file", content: make([]byte, testMaxUpload+1), wantStatus: http.StatusRequestEntityTooLarge},
		{
			name:       "store failure",
			field:      "file",
			content:    []byte("hello"),
			upload:     func(context.Context, string, *multipart.FileHeader) (*file.File, error) { return nil, services.ErrUploadFailed },
			wantStatus: http.StatusInternalServerError,
			wantCalls:  1,
		},
		{name: "created", field: "file", content: []byte("hello"), upload: okUpload, wantStatus: http.StatusCreated, wantCalls: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeFileService{UploadFunc: tt.upload}
			r := setupFileRouter(svc)

			rr := doMultipartReq(t, r, RouteUpload, tt.field, "notes.txt", tt.content, nil)

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.Equal(t, tt.wantCalls, svc.UploadCalls)
			if tt.wantStatus == http.StatusCreated {
				f := decodeBody(t, rr)["file"].(map[string]any)
				assert.EqualValues(t, 9, f["fileid"])
				assert.Equal(t, "notes.txt", f["originalname"])
				assert.EqualValues(t, 5, f["filesize"])
			}
		})
	}
}

func TestFileController_Download(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		download   func(ctx context.Context, identityID string, id file.ID) (*ports.Download, error)
		wantStatus int
		wantError  string
	}{
		{name: "bad id", path: "/dashboard/download/abc", wantStatus: http.StatusBadRequest},
		{
			name: "no record",
			path: "/dashboard/download/5",
			download: func(context.Context, string, file.ID) (*ports.Download, error) {
				return nil, services.ErrFileNotFound
			},
			wantStatus: http.StatusNotFound,
			wantError:  "file not found",
		},
		{
			name: "not the owner",
			path: "/dashboard/download/5",
			download: func(context.Context, string, file.ID) (*ports.Download, error) {
				return nil, services.ErrAccessDenied
			},
			wantStatus: http.StatusForbidden,
			wantError:  "access denied",
		},
		{
			name: "bytes missing",
			path: "/dashboard/download/5",
			download: func(context.Context, string, file.ID) (*ports.Download, error) {
				return nil, services.ErrFileMissingOnServer
			},
			wantStatus: http.StatusNotFound,
			wantError:  "file not found on server",
		},
		{
			name: "storage error",
			path: "/dashboard/download/5",
			download: func(context.Context, string, file.ID) (*ports.Download, error) {
				return nil, errors.New("disk on fire")
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "failed to download file",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupFileRouter(&FakeFileService{DownloadFunc: tt.download})
			rr := doReq(t, r, http.MethodGet, tt.path, nil, nil)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeBody(t, rr)["error"])
			}
		})
	}

	t.Run("streams under the original name", func(t *testing.T) {
		var gotID file.ID
		r := setupFileRouter(&FakeFileService{DownloadFunc: func(_ context.Context, _ string, id file.ID) (*ports.Download, error) {
			gotID = id
			return &ports.Download{
				File: &file.File{FileID: id, OriginalFilename: "résumé final.pdf", StoredFilename: "abc.pdf", MimeType: "application/pdf"},
				Body: io.NopCloser(strings.NewReader("PDFBYTES")),
				Size: 8,
			}, nil
		}})

		rr := doReq(t, r, http.MethodGet, "/dashboard/download/42", nil, nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, file.ID(42), gotID)
		assert.Equal(t, "PDFBYTES", rr.Body.String())
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		cd := rr.Header().Get("Content-Disposition")
		assert.True(t, strings.HasPrefix(cd, "attachment;"), cd)
		assert.Contains(t, cd, "r%C3%A9sum%C3%A9%20final.pdf")
		assert.NotContains(t, cd, "abc.pdf")
	})
}

func TestFileController_Delete(t *testing.T) {
	deleted := map[file.ID]bool{}
	svc := &FakeFileService{DeleteFunc: func(_ context.Context, _ string, id file.ID) error {
		switch {
		case id == 7:
			return services.ErrAccessDenied
		case deleted[id]:
			return services.ErrFileNotFound
		}
		deleted[id] = true
		return nil
	}}
	r := setupFileRouter(svc)

	rr := doReq(t, r, http.MethodDelete, "/dashboard/delete/NaN", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doReq(t, r, http.MethodDelete, "/dashboard/delete/7", nil, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doReq(t, r, http.MethodDelete, "/dashboard/delete/3", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "file deleted successfully", decodeBody(t, rr)["message"])

	rr = doReq(t, r, http.MethodDelete, "/dashboard/delete/3", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code, "deleting twice is a 404")
}
