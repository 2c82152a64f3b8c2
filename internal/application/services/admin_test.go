package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/identity"
	"file-manager-api/internal/domain/profile"
	"file-manager-api/internal/infrastructure/mq"
	"file-manager-api/internal/infrastructure/storage"
)

var admin = &profile.Profile{UserID: 100, AuthUserID: "auth-admin", Email: "root@x.com", Username: "root", Role: profile.RoleAdmin}

func newAdminFixture(t *testing.T, provider *FakeProvider) (*AdminService, *memProfiles, *memFiles, *storage.Local, *recordingPublisher) {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	victim := *owner
	profiles := newMemProfiles(admin, &victim)
	files := newMemFiles(&file.File{FileID: 1, UserID: owner.UserID, StoragePath: "1/a.bin"})
	_, err = store.Save(context.Background(), "1/a.bin", bytesReader("a"))
	require.NoError(t, err)

	events := &recordingPublisher{}
	svc := NewAdminService(provider, profiles, files, store, events, zap.NewNop(), newTestCounter()).(*AdminService)

	return svc, profiles, files, store, events
}

func TestAdminService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		var deleted string
		provider := &FakeProvider{DeleteFunc: func(_ context.Context, id string) error {
			deleted = id
			return nil
		}}
		svc, profiles, _, store, events := newAdminFixture(t, provider)

		require.NoError(t, svc.DeleteUser(ctx, admin.AuthUserID, owner.UserID))

		assert.Equal(t, owner.AuthUserID, deleted)
		assert.NotContains(t, profiles.rows, owner.UserID)
		ok, err := store.Exists(ctx, "1/a.bin")
		require.NoError(t, err)
		assert.False(t, ok, "owned bytes are removed with the user")
		assert.Equal(t, []string{mq.EventUserDeleted}, events.types())
	})

	t.Run("self deletion never reaches the provider", func(t *testing.T) {
		provider := &FakeProvider{DeleteFunc: func(context.Context, string) error { return nil }}
		svc, profiles, _, _, _ := newAdminFixture(t, provider)

		err := svc.DeleteUser(ctx, admin.AuthUserID, admin.UserID)

		require.ErrorIs(t, err, ErrSelfDeletion)
		assert.Zero(t, provider.DeleteCalls)
		assert.Contains(t, profiles.rows, admin.UserID)
	})

	t.Run("unknown target", func(t *testing.T) {
		provider := &FakeProvider{}
		svc, _, _, _, _ := newAdminFixture(t, provider)

		require.ErrorIs(t, svc.DeleteUser(ctx, admin.AuthUserID, 999), ErrUserNotFound)
		assert.Zero(t, provider.DeleteCalls)
	})

	t.Run("provider failure keeps the profile", func(t *testing.T) {
		provider := &FakeProvider{DeleteFunc: func(context.Context, string) error { return errors.New("gotrue 500") }}
		svc, profiles, files, store, events := newAdminFixture(t, provider)

		require.ErrorIs(t, svc.DeleteUser(ctx, admin.AuthUserID, owner.UserID), ErrIdentityDeletion)

		assert.Contains(t, profiles.rows, owner.UserID)
		assert.Len(t, files.rows, 1)
		ok, err := store.Exists(ctx, "1/a.bin")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, events.types())
	})

	t.Run("identity already gone", func(t *testing.T) {
		provider := &FakeProvider{DeleteFunc: func(context.Context, string) error { return identity.ErrNotFound }}
		svc, profiles, _, _, _ := newAdminFixture(t, provider)

		require.NoError(t, svc.DeleteUser(ctx, admin.AuthUserID, owner.UserID))
		assert.NotContains(t, profiles.rows, owner.UserID)
	})

	t.Run("caller lookup fails", func(t *testing.T) {
		provider := &FakeProvider{}
		svc, _, _, _, _ := newAdminFixture(t, provider)

		require.ErrorIs(t, svc.DeleteUser(ctx, "auth-ghost", owner.UserID), ErrProfileNotFound)
		assert.Zero(t, provider.DeleteCalls)
	})
}

func TestAdminService_CreateAndList(t *testing.T) {
	provider := &FakeProvider{SignUpFunc: func(_ context.Context, email, _ string) (*identity.Identity, error) {
		return &identity.Identity{ID: "auth-new", Email: email}, nil
	}}
	svc, _, _, _, _ := newAdminFixture(t, provider)

	p, err := svc.CreateUser(context.Background(), ports.NewUser{Email: "new@x.com", Password: "secret1", Username: "newbie", Role: profile.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, profile.RoleAdmin, p.Role)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, owner.UserID, users[0].UserID)
	assert.Equal(t, admin.UserID, users[1].UserID)
	assert.Equal(t, p.UserID, users[2].UserID)
}
