package ports

import (
	"context"
	"io"
	"mime/multipart"

	"file-manager-api/internal/domain/file"
)

type Download struct {
	File *file.File
	Body io.ReadCloser
	Size int64
}

type FileService interface {
	ListFiles(ctx context.Context, identityID string) (file.Files, error)
	Upload(ctx context.Context, identityID string, in *multipart.FileHeader) (*file.File, error)
	Download(ctx context.Context, identityID string, id file.ID) (*Download, error)
	Delete(ctx context.Context, identityID string, id file.ID) error
}
