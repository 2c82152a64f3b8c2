package ports

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

// Storage keeps uploaded bytes under opaque keys.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	// Open returns ErrObjectNotFound when nothing is stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Delete returns ErrObjectNotFound when nothing is stored under key.
	Delete(ctx context.Context, key string) error
}
