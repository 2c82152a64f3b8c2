package profile

import (
	"errors"
	"strings"
	"time"
)

type (
	ID   int64
	Role string

	Profile struct {
		UserID     ID
		AuthUserID string
		Email      string
		Username   string
		Role       Role
		CreatedAt  time.Time
	}
	Profiles []*Profile
)

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrInvalidRole = errors.New("role must be one of: user, admin")

// ParseRole maps an optional wire value onto the closed role set.
// An empty value defaults to RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrInvalidRole
}

func (r Role) String() string { return string(r) }

func (p *Profile) IsAdmin() bool { return p != nil && p.Role == RoleAdmin }
