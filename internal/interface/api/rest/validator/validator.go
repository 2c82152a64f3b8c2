package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"file-manager-api/internal/domain/profile"
	"file-manager-api/internal/interface/api/rest/dto/auth"
)

const (
	minPasswordLen   = 6
	maxPasswordBytes = 72 // bcrypt input limit
	maxUsernameLen   = 64
)

var ErrInvalidID = errors.New("invalid id")

// ParseID accepts positive decimal ids only.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// ValidateRegister checks a sign-up request and returns the parsed role.
func ValidateRegister(r auth.RegisterRequest) (profile.Role, map[string]string) {
	errs := make(map[string]string)

	validateEmail(r.Email, errs)
	validatePassword(r.Password, errs)

	username := strings.TrimSpace(r.Username)
	if username == "" {
		errs["username"] = "username is required"
	} else if utf8.RuneCountInString(username) > maxUsernameLen {
		errs["username"] = "username must be at most 64 characters"
	}

	role, err := profile.ParseRole(r.Role)
	if err != nil {
		errs["role"] = err.Error()
	}

	if len(errs) == 0 {
		return role, nil
	}

	return "", errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	validateEmail(r.Email, errs)

	// password is not trimmed, only checked for presence
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(raw string, errs map[string]string) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		errs["email"] = "email is required"
	} else if a, err := mail.ParseAddress(email); err != nil || a.Address != email {
		errs["email"] = "invalid email format"
	}
}

func validatePassword(password string, errs map[string]string) {
	if strings.TrimSpace(password) == "" {
		errs["password"] = "password is required"
	} else if utf8.RuneCountInString(password) < minPasswordLen {
		errs["password"] = "password must be at least 6 characters"
	} else if len(password) > maxPasswordBytes {
		errs["password"] = "password must be at most 72 bytes"
	}
}
