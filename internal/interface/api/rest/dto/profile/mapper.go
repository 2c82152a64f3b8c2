package profile

import (
	"file-manager-api/internal/domain/profile"
)

func ToResponseUser(p profile.Profile) User {
	return User{
		ID:       int64(p.UserID),
		Email:    p.Email,
		Username: p.Username,
		Role:     p.Role.String(),
	}
}

func ToListedUsers(ps profile.Profiles) ListedUsers {
	us := make(ListedUsers, len(ps))
	for idx, p := range ps {
		us[idx] = ListedUser{
			UserID:    int64(p.UserID),
			Email:     p.Email,
			Username:  p.Username,
			Role:      p.Role.String(),
			CreatedAt: p.CreatedAt,
		}
	}

	return us
}
