package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	domain "file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/profile"
	"file-manager-api/internal/infrastructure/metrics"
	"file-manager-api/internal/infrastructure/mq"
)

const octetStream = "application/octet-stream"

type FileService struct {
	files    domain.Repository
	profiles profile.Repository
	storage  ports.Storage
	events   ports.EventPublisher
	logger   *zap.Logger
	mCounter *prometheus.CounterVec
	now      func() time.Time
}

func NewFileService(
	files domain.Repository,
	profiles profile.Repository,
	storage ports.Storage,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		files:    files,
		profiles: profiles,
		storage:  storage,
		events:   events,
		logger:   logger,
		mCounter: mCounter,
		now:      time.Now,
	}
}

func (fs *FileService) ListFiles(ctx context.Context, identityID string) (domain.Files, error) {
	owner, err := resolveProfile(ctx, fs.profiles, identityID)
	if err != nil {
		return nil, err
	}

	files, err := fs.files.FetchFilesByUser(ctx, owner.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch files: %w", err)
	}

	return files, nil
}

// Upload writes the bytes first and the record second. When the record cannot
// be written the bytes are removed again, so storage never holds an upload
// that no record points to.
func (fs *FileService) Upload(ctx context.Context, identityID string, in *multipart.FileHeader) (*domain.File, error) {
	owner, err := resolveProfile(ctx, fs.profiles, identityID)
	if err != nil {
		return nil, err
	}

	src, err := in.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mimeType, err := detectMimeType(in.Header.Get("Content-Type"), src)
	if err != nil {
		return nil, err
	}

	original := displayFileName(in.Filename)
	stored, key := storageName(owner.UserID, original, mimeType, fs.now())

	n, err := fs.storage.Save(ctx, key, src)
	if err != nil {
		return nil, fmt.Errorf("%w: save bytes: %v", ErrUploadFailed, err)
	}

	rec, err := fs.files.CreateFile(ctx, domain.File{
		UserID:           owner.UserID,
		StoredFilename:   stored,
		OriginalFilename: original,
		StoragePath:      key,
		SizeBytes:        n,
		MimeType:         mimeType,
	})
	if err != nil {
		fs.cleanup(ctx, key)
		return nil, fmt.Errorf("%w: create record: %v", ErrUploadFailed, err)
	}

	fs.mCounter.WithLabelValues(metrics.FileUploaded).Inc()
	publish(ctx, fs.logger, fs.events, mq.NewEvent(mq.EventFileUploaded, int64(owner.UserID), filePayload(rec)))

	return rec, nil
}

// cleanup outlives request cancellation; a failure is logged, not returned.
func (fs *FileService) cleanup(ctx context.Context, key string) {
	if err := fs.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		fs.logger.Error("upload cleanup error", zap.Error(err), zap.String("storage_path", key))
		return
	}
	fs.mCounter.WithLabelValues(metrics.UploadCleanup).Inc()
}

func (fs *FileService) Download(ctx context.Context, identityID string, id domain.ID) (*ports.Download, error) {
	rec, err := fs.ownedFile(ctx, identityID, id)
	if err != nil {
		return nil, err
	}

	ok, err := fs.storage.Exists(ctx, rec.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("check storage: %w", err)
	}
	if !ok {
		return nil, ErrFileMissingOnServer
	}

	body, size, err := fs.storage.Open(ctx, rec.StoragePath)
	if err != nil {
		if errors.Is(err, ports.ErrObjectNotFound) {
			return nil, ErrFileMissingOnServer
		}
		return nil, fmt.Errorf("open stored file: %w", err)
	}

	return &ports.Download{File: rec, Body: body, Size: size}, nil
}

// Delete removes the bytes when present and then the record.
func (fs *FileService) Delete(ctx context.Context, identityID string, id domain.ID) error {
	rec, err := fs.ownedFile(ctx, identityID, id)
	if err != nil {
		return err
	}

	if err = fs.storage.Delete(ctx, rec.StoragePath); err != nil {
		if !errors.Is(err, ports.ErrObjectNotFound) {
			return fmt.Errorf("delete stored file: %w", err)
		}
		fs.logger.Warn("stored file already missing", zap.Int64("file_id", int64(rec.FileID)))
	}

	deleted, err := fs.files.DeleteFile(ctx, rec.FileID)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if !deleted {
		return ErrFileNotFound
	}

	fs.mCounter.WithLabelValues(metrics.FileDeleted).Inc()
	publish(ctx, fs.logger, fs.events, mq.NewEvent(mq.EventFileDeleted, int64(rec.UserID), filePayload(rec)))

	return nil
}

// ownedFile runs the guard chain shared by download and delete:
// caller profile, record lookup, then ownership.
func (fs *FileService) ownedFile(ctx context.Context, identityID string, id domain.ID) (*domain.File, error) {
	caller, err := resolveProfile(ctx, fs.profiles, identityID)
	if err != nil {
		return nil, err
	}

	rec, err := fs.files.FetchFileByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	if rec == nil {
		return nil, ErrFileNotFound
	}
	if !rec.OwnedBy(caller.UserID) {
		return nil, ErrAccessDenied
	}

	return rec, nil
}

// detectMimeType trusts the declared type unless it is missing or generic,
// then sniffs the content and rewinds src.
func detectMimeType(declared string, src io.ReadSeeker) (string, error) {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != octetStream {
			return mt, nil
		}
	}

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect mime type: %w", err)
	}
	if _, err = src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	return mt.String(), nil
}

func filePayload(f *domain.File) mq.FilePayload {
	return mq.FilePayload{
		FileID:           int64(f.FileID),
		OriginalFilename: f.OriginalFilename,
		SizeBytes:        f.SizeBytes,
		MimeType:         f.MimeType,
	}
}
