package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("file not found")
	ErrUnauthorized = errors.New("credentials rejected")
	ErrConflict     = errors.New("version conflict")
	ErrUnavailable  = errors.New("store unavailable")
)

// File is a snapshot of a stored file. Version identifies the exact content
// that was read and must be presented when writing the file back.
type File struct {
	Path    string
	Content []byte
	Version string
}

//go:generate mockgen -source=store.go -destination=mock/mock_store.go -package=mock

// VersionedFileStore reads and conditionally writes whole files.
type VersionedFileStore interface {
	Read(ctx context.Context, path string) (File, error)
	// Write replaces the file content if its current version equals version.
	// It returns ErrConflict when the file changed since it was read.
	Write(ctx context.Context, path string, content []byte, version, message string) error
}
