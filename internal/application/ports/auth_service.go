package ports

import (
	"context"

	"file-manager-api/internal/domain/identity"
	"file-manager-api/internal/domain/profile"
)

type NewUser struct {
	Email    string
	Password string
	Username string
	Role     profile.Role
}

type AuthService interface {
	Register(ctx context.Context, in NewUser) (*profile.Profile, error)
	Login(ctx context.Context, email, password string) (*profile.Profile, *identity.Session, error)
	Logout(ctx context.Context, accessToken string) error
	ProfileResolver
}

// ProfileResolver maps an authenticated identity onto its local profile.
type ProfileResolver interface {
	Profile(ctx context.Context, identityID string) (*profile.Profile, error)
}
