package ports

import (
	"context"

	"file-manager-api/internal/domain/profile"
)

type AdminService interface {
	ListUsers(ctx context.Context) (profile.Profiles, error)
	CreateUser(ctx context.Context, in NewUser) (*profile.Profile, error)
	DeleteUser(ctx context.Context, callerIdentityID string, target profile.ID) error
}
