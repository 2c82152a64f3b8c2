package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the credential pair issued at login. It is passed explicitly to
// every authenticated call; the client itself keeps no token state.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

func (s *Session) Valid() bool { return s != nil && s.AccessToken != "" }

func (s *Session) Clear() {
	if s != nil {
		*s = Session{}
	}
}

// SessionFile persists a Session between runs of a CLI or desktop shell.
type SessionFile struct {
	Path string
}

// Load returns an empty session when nothing has been saved yet.
func (f SessionFile) Load() (*Session, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err = json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (f SessionFile) Save(s *Session) error {
	if !s.Valid() {
		return f.Clear()
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	if err = os.WriteFile(f.Path, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (f SessionFile) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
