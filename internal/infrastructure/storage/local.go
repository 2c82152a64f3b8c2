// Package storage holds the blob stores behind ports.Storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"file-manager-api/internal/application/ports"
)

type Local struct {
	absBasePath string
}

// NewLocal creates basePath if needed and checks that it is writable.
func NewLocal(basePath string) (*Local, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for '%s': %w", basePath, err)
	}

	if err = os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory '%s': %w", absPath, err)
	}

	probe := filepath.Join(absPath, ".write_test_"+strconv.FormatInt(time.Now().UnixNano(), 10))
	f, err := os.Create(probe)
	if err != nil {
		return nil, fmt.Errorf("upload directory '%s' is not writable: %w", absPath, err)
	}
	_ = f.Close()
	_ = os.Remove(probe)

	return &Local{absBasePath: absPath + string(os.PathSeparator)}, nil
}

func (s *Local) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dst, err := s.resolve(key)
	if err != nil {
		return 0, err
	}

	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory for '%s': %w", key, err)
	}

	// O_EXCL: a key is never overwritten
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create '%s': %w", key, err)
	}

	n, err := io.Copy(f, r)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("failed to write '%s': %w", key, err)
	}

	return n, nil
}

func (s *Local) Open(_ context.Context, key string) (io.ReadCloser, int64, error) {
	p, err := s.resolve(key)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, ports.ErrObjectNotFound
		}
		return nil, 0, fmt.Errorf("failed to open '%s': %w", key, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("failed to stat '%s': %w", key, err)
	}

	return f, st.Size(), nil
}

func (s *Local) Exists(_ context.Context, key string) (bool, error) {
	p, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	st, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat '%s': %w", key, err)
	}

	return st.Mode().IsRegular(), nil
}

func (s *Local) Delete(_ context.Context, key string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err = os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ports.ErrObjectNotFound
		}
		return fmt.Errorf("failed to delete '%s': %w", key, err)
	}

	return nil
}

func (s *Local) resolve(key string) (string, error) {
	if key == "" || strings.ContainsRune(key, 0) || filepath.IsAbs(key) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}

	p := filepath.Join(s.absBasePath, filepath.FromSlash(key))
	if !strings.HasPrefix(p, s.absBasePath) {
		return "", fmt.Errorf("invalid storage key, potential directory traversal: %q", key)
	}

	return p, nil
}
