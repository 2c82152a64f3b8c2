package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/identity"
	"file-manager-api/internal/domain/profile"
	"file-manager-api/internal/infrastructure/metrics"
	"file-manager-api/internal/infrastructure/mq"
)

var errStoreDown = errors.New("store unavailable")

func newTestCounter() *prometheus.CounterVec {
	return metrics.NewCounterWith(prometheus.NewRegistry())
}

type memProfiles struct {
	mu        sync.Mutex
	nextID    profile.ID
	rows      map[profile.ID]*profile.Profile
	createErr error
	fetchErr  error
}

func newMemProfiles(seed ...*profile.Profile) *memProfiles {
	m := &memProfiles{rows: map[profile.ID]*profile.Profile{}}
	for _, p := range seed {
		m.rows[p.UserID] = p
		if p.UserID > m.nextID {
			m.nextID = p.UserID
		}
	}
	return m
}

func (m *memProfiles) CreateProfile(_ context.Context, req profile.Profile) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, p := range m.rows {
		if p.Email == req.Email || p.Username == req.Username {
			return nil, errors.New("duplicate profile")
		}
	}
	m.nextID++
	req.UserID = m.nextID
	req.CreatedAt = time.Now()
	m.rows[req.UserID] = &req
	out := req
	return &out, nil
}

func (m *memProfiles) FetchProfileByAuthID(_ context.Context, authUserID string) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	for _, p := range m.rows {
		if p.AuthUserID == authUserID {
			out := *p
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memProfiles) FetchProfileByID(_ context.Context, id profile.ID) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (m *memProfiles) FetchProfiles(_ context.Context) (profile.Profiles, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	out := make(profile.Profiles, 0, len(m.rows))
	for _, p := range m.rows {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *memProfiles) DeleteProfile(_ context.Context, id profile.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type memFiles struct {
	mu        sync.Mutex
	nextID    file.ID
	rows      map[file.ID]*file.File
	createErr error
}

func newMemFiles(seed ...*file.File) *memFiles {
	m := &memFiles{rows: map[file.ID]*file.File{}}
	for _, f := range seed {
		m.rows[f.FileID] = f
		if f.FileID > m.nextID {
			m.nextID = f.FileID
		}
	}
	return m
}

func (m *memFiles) FetchFilesByUser(_ context.Context, userID profile.ID) (file.Files, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := file.Files{}
	for _, f := range m.rows {
		if f.UserID == userID {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileID < out[j].FileID })
	return out, nil
}

func (m *memFiles) FetchFileByID(_ context.Context, id file.ID) (*file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (m *memFiles) CreateFile(_ context.Context, req file.File) (*file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	req.FileID = m.nextID
	req.UploadedAt = time.Now()
	m.rows[req.FileID] = &req
	out := req
	return &out, nil
}

func (m *memFiles) DeleteFile(_ context.Context, id file.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type FakeProvider struct {
	SignUpFunc  func(ctx context.Context, email, password string) (*identity.Identity, error)
	SignInFunc  func(ctx context.Context, email, password string) (*identity.Identity, *identity.Session, error)
	SignOutFunc func(ctx context.Context, accessToken string) error
	VerifyFunc  func(ctx context.Context, accessToken string) (*identity.Identity, error)
	DeleteFunc  func(ctx context.Context, identityID string) error

	SignUpCalls int
	DeleteCalls int
}

func (f *FakeProvider) SignUp(ctx context.Context, email, password string) (*identity.Identity, error) {
	f.SignUpCalls++
	if f.SignUpFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SignUpFunc(ctx, email, password)
}

func (f *FakeProvider) SignIn(ctx context.Context, email, password string) (*identity.Identity, *identity.Session, error) {
	if f.SignInFunc == nil {
		return nil, nil, errors.New("not used")
	}
	return f.SignInFunc(ctx, email, password)
}

func (f *FakeProvider) SignOut(ctx context.Context, accessToken string) error {
	if f.SignOutFunc == nil {
		return errors.New("not used")
	}
	return f.SignOutFunc(ctx, accessToken)
}

func (f *FakeProvider) Verify(ctx context.Context, accessToken string) (*identity.Identity, error) {
	if f.VerifyFunc == nil {
		return nil, errors.New("not used")
	}
	return f.VerifyFunc(ctx, accessToken)
}

func (f *FakeProvider) Delete(ctx context.Context, identityID string) error {
	f.DeleteCalls++
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, identityID)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e mq.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// newFileHeader builds a parsed multipart file part. An empty contentType
// leaves the part header without one.
func newFileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, name))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func bytesReader(s string) *bytes.Reader { return bytes.NewReader([]byte(s)) }
