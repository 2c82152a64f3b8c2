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
	"file-manager-api/internal/infrastructure/metrics"
	"file-manager-api/internal/infrastructure/mq"
)

// accounts holds what registration and admin user creation share.
type accounts struct {
	provider identity.Provider
	profiles profile.Repository
	events   ports.EventPublisher
	logger   *zap.Logger
	mCounter *prometheus.CounterVec
}

// create signs the identity up first and only then writes the local profile.
func (a *accounts) create(ctx context.Context, in ports.NewUser) (*profile.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	ident, err := a.provider.SignUp(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, identity.ErrSignUpRejected) {
			return nil, fmt.Errorf("%w: %v", ErrRegistrationRejected, err)
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}

	role := in.Role
	if role == "" {
		role = profile.RoleUser
	}

	p, err := a.profiles.CreateProfile(ctx, profile.Profile{
		AuthUserID: ident.ID,
		Email:      email,
		Username:   strings.TrimSpace(in.Username),
		Role:       role,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileCreation, err)
	}

	a.mCounter.WithLabelValues(metrics.UserRegistered).Inc()
	publish(ctx, a.logger, a.events, mq.NewEvent(mq.EventUserCreated, int64(p.UserID), mq.UserPayload{
		Email:    p.Email,
		Username: p.Username,
		Role:     p.Role.String(),
	}))

	return p, nil
}

// resolveProfile is the one place an authenticated identity becomes a local userid.
func resolveProfile(ctx context.Context, profiles profile.Repository, identityID string) (*profile.Profile, error) {
	p, err := profiles.FetchProfileByAuthID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	return p, nil
}

// publish never fails the caller; audit delivery is best effort.
func publish(ctx context.Context, logger *zap.Logger, events ports.EventPublisher, e mq.Event) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, e); err != nil {
		logger.Error("Publish() error", zap.Error(err), zap.String("event_type", e.Type))
	}
}
