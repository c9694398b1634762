package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uniflow-app/uniflow-api/internal/models"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
)

// FileStateRepository keeps the state document as a single JSON file
// on local disk. This is the default backend for a personal install.
type FileStateRepository struct {
	path string
}

// NewFileStateRepository ensures the data directory exists and returns
// a handle. The schema version is part of the filename, so a version
// bump simply orphans the old file.
func NewFileStateRepository(dir string) (*FileStateRepository, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStateRepository{path: filepath.Join(dir, models.StateKey+".json")}, nil
}

// Load reads the stored document. Returns ErrStateMissing when no
// document has ever been written.
func (r *FileStateRepository) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, appErrors.ErrStateMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "read state file")
	}
	return data, nil
}

// Save replaces the whole document. The write goes through a temp file
// and rename so a crash mid-write never leaves a truncated document.
func (r *FileStateRepository) Save(_ context.Context, data []byte) error {
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "write state file")
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "replace state file")
	}
	return nil
}

// Clear removes the stored document entirely.
func (r *FileStateRepository) Clear(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "remove state file")
	}
	return nil
}

// Path exposes the underlying file path (useful for debugging).
func (r *FileStateRepository) Path() string {
	return r.path
}
