package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "file-manager-api/internal/domain/profile"
	"file-manager-api/internal/infrastructure/db/postgres"
)

var ErrProfileAlreadyExists = errors.New("email or username already taken")

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func scanProfile(row pgx.Row) (*Profile, error) {
	p := new(Profile)
	err := row.Scan(
		&p.UserID,
		&p.AuthUserID,
		&p.Email,
		&p.Username,
		&p.Role,
		&p.CreatedAt,
	)

	return p, err
}

func (r *Repository) FetchProfiles(ctx context.Context) (domain.Profiles, error) {
	rows, err := r.db.Query(ctx, SelectProfiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ps := Profiles{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}

		ps = append(ps, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(ps), nil
}

func (r *Repository) FetchProfileByAuthID(ctx context.Context, authUserID string) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, SelectProfileByAuthID, authUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) FetchProfileByID(ctx context.Context, id domain.ID) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, SelectProfileByID, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) CreateProfile(ctx context.Context, req domain.Profile) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(
		ctx,
		InsertProfile,
		req.AuthUserID, req.Email, req.Username, req.Role.String(),
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrProfileAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

// DeleteProfile removes the profile; owned file rows go with it via ON DELETE CASCADE.
func (r *Repository) DeleteProfile(ctx context.Context, id domain.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteProfileByID, int64(id))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
