package profile

import (
	"time"
)

type (
	Profile struct {
		UserID     int64
		AuthUserID string
		Email      string
		Username   string
		Role       string
		CreatedAt  time.Time
	}
	Profiles []*Profile
)
