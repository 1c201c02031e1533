package blobstore

import (
	"context"
	"errors"
	"os"
)

// ErrNotFound is returned when a named file does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is the narrow repository abstraction the tracking store is built
// on: read a named file, atomically replace it, list children, delete.
// Names are slash-separated keys relative to the store root.
//
// Keeping the surface this small lets an object store (S3, MinIO) stand in
// for the local filesystem without touching the query engine.
type Store interface {
	// ReadFile returns the full content of the named file, or an error
	// satisfying errors.Is(err, ErrNotFound) when it does not exist.
	ReadFile(ctx context.Context, name string) ([]byte, error)

	// WriteFile atomically replaces the named file with data, creating
	// any missing parents. A crash mid-write never leaves a torn file
	// readable under name.
	WriteFile(ctx context.Context, name string, data []byte) error

	// Delete removes the named file. Deleting an absent file is not an
	// error.
	Delete(ctx context.Context, name string) error

	// List returns the sorted keys of all files whose name starts with
	// prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Exists reports whether the named file is present in s.
func Exists(ctx context.Context, s Store, name string) (bool, error) {
	_, err := s.ReadFile(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
