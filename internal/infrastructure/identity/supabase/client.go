// Package supabase talks to the GoTrue auth API of a hosted Supabase project.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"file-manager-api/internal/domain/identity"
)

const (
	pathSignUp     = "/auth/v1/signup"
	pathToken      = "/auth/v1/token"
	pathLogout     = "/auth/v1/logout"
	pathUser       = "/auth/v1/user"
	pathAdminUsers = "/auth/v1/admin/users/"

	maxErrorBody = 1 << 12
)

type Client struct {
	baseURL        string
	anonKey        string
	serviceRoleKey string
	httpClient     *http.Client
	logger         *zap.Logger
}

func New(baseURL, anonKey, serviceRoleKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		anonKey:        anonKey,
		serviceRoleKey: serviceRoleKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type (
	credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	// signUpResponse covers both shapes GoTrue returns: a bare user when email
	// confirmation is on, a session with a nested user when it is off.
	signUpResponse struct {
		user
		User *user `json:"user"`
	}
	tokenResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         user   `json:"user"`
	}
	apiError struct {
		Status  int
		Code    string `json:"error_code"`
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Desc    string `json:"error_description"`
	}
)

func (e *apiError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = e.Desc
	}
	return fmt.Sprintf("supabase auth: status %d: %s", e.Status, msg)
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*identity.Identity, error) {
	var out signUpResponse
	err := c.do(ctx, http.MethodPost, pathSignUp, c.anonKey, credentials{Email: email, Password: password}, &out)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %v", identity.ErrSignUpRejected, err)
		}
		return nil, err
	}

	u := out.user
	if out.User != nil {
		u = *out.User
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: empty user in response", identity.ErrSignUpRejected)
	}

	return &identity.Identity{ID: u.ID, Email: u.Email}, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*identity.Identity, *identity.Session, error) {
	var out tokenResponse
	path := pathToken + "?" + url.Values{"grant_type": {"password"}}.Encode()
	err := c.do(ctx, http.MethodPost, path, c.anonKey, credentials{Email: email, Password: password}, &out)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return nil, nil, identity.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if out.AccessToken == "" || out.User.ID == "" {
		return nil, nil, fmt.Errorf("supabase auth: incomplete token response")
	}

	return &identity.Identity{ID: out.User.ID, Email: out.User.Email},
		&identity.Session{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken},
		nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	err := c.do(ctx, http.MethodPost, pathLogout, accessToken, nil, nil)
	var apiErr *apiError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
		return identity.ErrInvalidToken
	}

	return err
}

func (c *Client) Verify(ctx context.Context, accessToken string) (*identity.Identity, error) {
	var out user
	if err := c.do(ctx, http.MethodGet, pathUser, accessToken, nil, &out); err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return nil, identity.ErrInvalidToken
		}
		return nil, err
	}
	if out.ID == "" {
		return nil, identity.ErrInvalidToken
	}

	return &identity.Identity{ID: out.ID, Email: out.Email}, nil
}

// Delete removes the auth user through the admin API; it needs the service role key.
func (c *Client) Delete(ctx context.Context, identityID string) error {
	if c.serviceRoleKey == "" {
		return errors.New("supabase auth: service role key is not configured")
	}

	err := c.do(ctx, http.MethodDelete, pathAdminUsers+url.PathEscape(identityID), c.serviceRoleKey, nil, nil)
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return identity.ErrNotFound
	}

	return err
}

func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase auth request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("supabase auth call",
		zap.String("method", method),
		zap.String("path", strings.SplitN(path, "?", 2)[0]),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &apiError{Status: resp.StatusCode}
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(apiErr)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
