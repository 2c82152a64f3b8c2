package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/domain/identity"
	"file-manager-api/internal/domain/profile"
)

type AuthService struct {
	accounts
}

func NewAuthService(
	provider identity.Provider,
	profiles profile.Repository,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.AuthService {
	return &AuthService{
		accounts: accounts{
			provider: provider,
			profiles: profiles,
			events:   events,
			logger:   logger,
			mCounter: mCounter,
		},
	}
}

func (as *AuthService) Register(ctx context.Context, in ports.NewUser) (*profile.Profile, error) {
	return as.create(ctx, in)
}

// Login returns the local profile, never the provider identity, next to the session.
func (as *AuthService) Login(ctx context.Context, email, password string) (*profile.Profile, *identity.Session, error) {
	ident, sess, err := as.provider.SignIn(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("sign in: %w", err)
	}

	p, err := resolveProfile(ctx, as.profiles, ident.ID)
	if err != nil {
		return nil, nil, err
	}

	return p, sess, nil
}

func (as *AuthService) Logout(ctx context.Context, accessToken string) error {
	if err := as.provider.SignOut(ctx, accessToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}

	return nil
}

func (as *AuthService) Profile(ctx context.Context, identityID string) (*profile.Profile, error) {
	return resolveProfile(ctx, as.profiles, identityID)
}
