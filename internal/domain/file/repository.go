package file

import (
	"context"

	"file-manager-api/internal/domain/profile"
)

type Repository interface {
	FetchFilesByUser(ctx context.Context, userID profile.ID) (Files, error)
	FetchFileByID(ctx context.Context, id ID) (*File, error)
	CreateFile(ctx context.Context, req File) (*File, error)
	DeleteFile(ctx context.Context, id ID) (bool, error)
}
