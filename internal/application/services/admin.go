package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/identity"
	"file-manager-api/internal/domain/profile"
	"file-manager-api/internal/infrastructure/metrics"
	"file-manager-api/internal/infrastructure/mq"
)

type AdminService struct {
	accounts
	files   file.Repository
	storage ports.Storage
}

func NewAdminService(
	provider identity.Provider,
	profiles profile.Repository,
	files file.Repository,
	storage ports.Storage,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.AdminService {
	return &AdminService{
		accounts: accounts{
			provider: provider,
			profiles: profiles,
			events:   events,
			logger:   logger,
			mCounter: mCounter,
		},
		files:   files,
		storage: storage,
	}
}

func (as *AdminService) ListUsers(ctx context.Context) (profile.Profiles, error) {
	users, err := as.profiles.FetchProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profiles: %w", err)
	}

	return users, nil
}

func (as *AdminService) CreateUser(ctx context.Context, in ports.NewUser) (*profile.Profile, error) {
	return as.create(ctx, in)
}

// DeleteUser removes the identity before the profile. If the identity cannot
// be removed the profile is left untouched.
func (as *AdminService) DeleteUser(ctx context.Context, callerIdentityID string, target profile.ID) error {
	victim, err := as.profiles.FetchProfileByID(ctx, target)
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}
	if victim == nil {
		return ErrUserNotFound
	}

	caller, err := resolveProfile(ctx, as.profiles, callerIdentityID)
	if err != nil {
		return err
	}
	if caller.UserID == victim.UserID {
		return ErrSelfDeletion
	}

	// records cascade with the profile; the bytes do not
	owned, err := as.files.FetchFilesByUser(ctx, victim.UserID)
	if err != nil {
		return fmt.Errorf("fetch files: %w", err)
	}

	if err = as.provider.Delete(ctx, victim.AuthUserID); err != nil {
		if !errors.Is(err, identity.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrIdentityDeletion, err)
		}
		as.logger.Warn("identity already gone, removing profile",
			zap.Int64("user_id", int64(victim.UserID)),
			zap.String("auth_user_id", victim.AuthUserID),
		)
	}

	deleted, err := as.profiles.DeleteProfile(ctx, victim.UserID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if !deleted {
		return ErrUserNotFound
	}

	for _, f := range owned {
		if derr := as.storage.Delete(ctx, f.StoragePath); derr != nil && !errors.Is(derr, ports.ErrObjectNotFound) {
			as.logger.Error("stored file cleanup error", zap.Error(derr), zap.String("storage_path", f.StoragePath))
		}
	}

	as.mCounter.WithLabelValues(metrics.UserDeleted).Inc()
	publish(ctx, as.logger, as.events, mq.NewEvent(mq.EventUserDeleted, int64(victim.UserID), mq.UserPayload{
		Email:    victim.Email,
		Username: victim.Username,
		Role:     victim.Role.String(),
	}))

	return nil
}
