package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound is returned by Get when nothing is stored at the path.
	ErrNotFound = errors.New("stored object not found")
	// ErrInvalidPath rejects paths that would leave the storage root.
	ErrInvalidPath = errors.New("invalid storage path")
)

// Storage keeps uploaded blobs (venue, cluster and zone images and their
// thumbnails) under slash-separated relative paths.
type Storage interface {
	Save(ctx context.Context, path string, content io.Reader) error
	// Get returns ErrNotFound for a missing path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete succeeds for a missing path.
	Delete(ctx context.Context, path string) error
}
