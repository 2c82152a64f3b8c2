package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSignUpRejected     = errors.New("sign-up rejected")
	ErrNotFound           = errors.New("identity not found")
)

// Provider is the boundary to the external identity service. Passwords,
// token issuance and session storage never leave it.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (*Identity, *Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Verify(ctx context.Context, accessToken string) (*Identity, error)
	Delete(ctx context.Context, identityID string) error
}
