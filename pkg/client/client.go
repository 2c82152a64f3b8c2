// Package client is a Go client for the file manager REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrNoSession = errors.New("not logged in")

type (
	User struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	// Account is a row of the admin user list.
	Account struct {
		UserID    int64     `json:"userid"`
		Email     string    `json:"email"`
		Username  string    `json:"username"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}
	File struct {
		FileID       int64     `json:"fileid"`
		UserID       int64     `json:"userid"`
		Filename     string    `json:"filename"`
		OriginalName string    `json:"originalname"`
		FileSize     int64     `json:"filesize"`
		MimeType     string    `json:"mimetype"`
		UploadedAt   time.Time `json:"uploaded_at"`
	}
	NewUser struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
		Role     string `json:"role,omitempty"`
	}

	// APIError is any non-2xx answer from the server.
	APIError struct {
		Status  int               `json:"-"`
		Message string            `json:"error"`
		Details map[string]string `json:"details,omitempty"`
	}
)

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Register(ctx context.Context, in NewUser) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/register", nil, in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	in := map[string]string{"email": email, "password": password}
	var out Session
	if err := c.doJSON(ctx, http.MethodPost, "/login", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout signs the session out and clears it, even when the server rejects
// the token.
func (c *Client) Logout(ctx context.Context, s *Session) error {
	defer s.Clear()
	return c.doJSON(ctx, http.MethodPost, "/logout", s, nil, nil)
}

func (c *Client) Profile(ctx context.Context, s *Session) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/profile", s, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) ListFiles(ctx context.Context, s *Session) ([]File, error) {
	var out struct {
		Files []File `json:"files"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard", s, nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// Upload streams body as the "file" part of a multipart form.
func (c *Client) Upload(ctx context.Context, s *Session, filename string, body io.Reader) (*File, error) {
	if !s.Valid() {
		return nil, ErrNoSession
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, body)
		}
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/dashboard/upload", pr)
	if err != nil {
		_ = pr.Close()
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		File File `json:"file"`
	}
	if err = c.send(req, s, &out); err != nil {
		_ = pr.Close()
		return nil, err
	}
	return &out.File, nil
}

// Download copies the file's bytes into w.
func (c *Client) Download(ctx context.Context, s *Session, id int64, w io.Writer) (int64, error) {
	if !s.Valid() {
		return 0, ErrNoSession
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/dashboard/download/%d", c.baseURL, id), nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, decodeError(resp)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("download %d: %w", id, err)
	}
	return n, nil
}

func (c *Client) DeleteFile(ctx context.Context, s *Session, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/dashboard/delete/%d", id), s, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context, s *Session) ([]Account, error) {
	var out struct {
		Users []Account `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin", s, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) CreateUser(ctx context.Context, s *Session, in NewUser) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/admin/create_user", s, in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, s *Session, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/delete_user/%d", id), s, nil, nil)
}

// doJSON sends in as a JSON body. A nil session means the route is public.
func (c *Client) doJSON(ctx context.Context, method, path string, s *Session, in, out any) error {
	if s != nil && !s.Valid() {
		return ErrNoSession
	}

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
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, s, out)
}

func (c *Client) send(req *http.Request, s *Session, out any) error {
	if s != nil {
		req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<12)).Decode(apiErr)
	return apiErr
}
