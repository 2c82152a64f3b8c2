package file

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/profile"
	"file-manager-api/internal/infrastructure/db/postgres"
)

var ErrOwnerNotFound = errors.New("owning profile does not exist")

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func scanFile(row pgx.Row) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.FileID,
		&f.UserID,

		&f.Filename,
		&f.OriginalName,
		&f.FilePath,
		&f.FileSize,
		&f.MimeType,

		&f.UploadedAt,
	)

	return f, err
}

func (r *Repository) FetchFilesByUser(ctx context.Context, userID profile.ID) (domain.Files, error) {
	rows, err := r.db.Query(ctx, SelectFilesByUser, int64(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fs := Files{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(fs), nil
}

func (r *Repository) FetchFileByID(ctx context.Context, id domain.ID) (*domain.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SelectFileByID, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) CreateFile(ctx context.Context, req domain.File) (*domain.File, error) {
	f, err := scanFile(r.db.QueryRow(
		ctx,
		InsertFile,
		int64(req.UserID), req.StoredFilename, req.OriginalFilename, req.StoragePath, req.SizeBytes, req.MimeType,
	))
	if err != nil {
		if postgres.IsPgForeignKeyViolation(err) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) DeleteFile(ctx context.Context, id domain.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteFileByID, int64(id))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
