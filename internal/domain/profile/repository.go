package profile

import (
	"context"
)

// Repository returns (nil, nil) from the Fetch* lookups when no row matches.
type Repository interface {
	CreateProfile(ctx context.Context, req Profile) (*Profile, error)
	FetchProfileByAuthID(ctx context.Context, authUserID string) (*Profile, error)
	FetchProfileByID(ctx context.Context, id ID) (*Profile, error)
	FetchProfiles(ctx context.Context) (Profiles, error)
	DeleteProfile(ctx context.Context, id ID) (bool, error)
}
