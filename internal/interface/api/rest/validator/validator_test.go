package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-manager-api/internal/domain/profile"
	"file-manager-api/internal/interface/api/rest/dto/auth"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name       string
		req        auth.RegisterRequest
		wantRole   profile.Role
		wantFields []string
	}{
		{
			name:     "ok, default role",
			req:      auth.RegisterRequest{Email: "a@x.com", Password: "secret1", Username: "alice"},
			wantRole: profile.RoleUser,
		},
		{
			name:     "ok, admin",
			req:      auth.RegisterRequest{Email: "a@x.com", Password: "secret1", Username: "alice", Role: "admin"},
			wantRole: profile.RoleAdmin,
		},
		{
			name:       "all missing",
			req:        auth.RegisterRequest{},
			wantFields: []string{"email", "password", "username"},
		},
		{
			name:       "short password",
			req:        auth.RegisterRequest{Email: "a@x.com", Password: "12345", Username: "alice"},
			wantFields: []string{"password"},
		},
		{
			name:     "72 byte password",
			req:      auth.RegisterRequest{Email: "a@x.com", Password: strings.Repeat("a", 72), Username: "alice"},
			wantRole: profile.RoleUser,
		},
		{
			name:       "multibyte password over 72 bytes",
			req:        auth.RegisterRequest{Email: "a@x.com", Password: strings.Repeat("é", 50), Username: "alice"},
			wantFields: []string{"password"},
		},
		{
			name:       "bad email",
			req:        auth.RegisterRequest{Email: "Alice <a@x.com>", Password: "secret1", Username: "alice"},
			wantFields: []string{"email"},
		},
		{
			name:       "unknown role",
			req:        auth.RegisterRequest{Email: "a@x.com", Password: "secret1", Username: "alice", Role: "superuser"},
			wantFields: []string{"role"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			role, errs := ValidateRegister(tt.req)
			if len(tt.wantFields) == 0 {
				require.Nil(t, errs)
				assert.Equal(t, tt.wantRole, role)
				return
			}
			require.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.Nil(t, ValidateLogin(auth.LoginRequest{Email: "a@x.com", Password: "x"}))

	errs := ValidateLogin(auth.LoginRequest{Email: " ", Password: "   "})
	assert.Equal(t, map[string]string{"email": "email is required", "password": "password is required"}, errs)
}

func TestParseID(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-3", "1.5", "NaN"} {
		_, err := ParseID(in)
		assert.ErrorIs(t, err, ErrInvalidID, in)
	}

	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}
