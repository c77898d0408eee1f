package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the upload directory if needed and returns a
// disk-backed store. URLs are built from baseURL, e.g.
// http://host/uploads/<key>.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	key := uuid.NewString() + "_" + SanitizeFilename(originalName)

	f, err := os.OpenFile(filepath.Join(s.dir, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return s.baseURL + "/uploads/" + key, nil
}

func (s *LocalStore) Open(name string) (io.ReadSeekCloser, error) {
	clean := SanitizeFilename(name)
	if clean != name {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.dir, clean))
}

// SanitizeFilename reduces a client-supplied filename to a safe storage
// key: whitespace becomes underscore, any directory component is
// dropped, and an empty result falls back to "upload".
func SanitizeFilename(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.Trim(name, "./\\")
	if name == "" {
		return "upload"
	}
	return name
}
