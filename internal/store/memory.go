package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync"
)

// Commit records a successful write to a MemoryStore.
type Commit struct {
	Path    string
	Message string
	Version string
}

// MemoryStore is an in-process VersionedFileStore. Versions are git blob
// hashes, matching what GitHub reports for the same content.
type MemoryStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	commits []Commit
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

// Put stores content unconditionally and returns its version.
func (m *MemoryStore) Put(path string, content []byte) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), content...)
	return BlobSHA(content)
}

func (m *MemoryStore) Read(ctx context.Context, path string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	if !ok {
		return File{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return File{
		Path:    path,
		Content: append([]byte(nil), content...),
		Version: BlobSHA(content),
	}, nil
}

func (m *MemoryStore) Write(ctx context.Context, path string, content []byte, version, message string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.files[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if currentVersion := BlobSHA(current); currentVersion != version {
		return fmt.Errorf("%w: %s is at %s but expected %s", ErrConflict, path, currentVersion, version)
	}
	m.files[path] = append([]byte(nil), content...)
	m.commits = append(m.commits, Commit{Path: path, Message: message, Version: BlobSHA(content)})
	return nil
}

// Content returns a copy of the stored bytes for path.
func (m *MemoryStore) Content(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), content...), true
}

// Commits returns the writes accepted so far, oldest first.
func (m *MemoryStore) Commits() []Commit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Commit(nil), m.commits...)
}

// BlobSHA returns the git blob object id of content.
func BlobSHA(content []byte) string {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", len(content))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
