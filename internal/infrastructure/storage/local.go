// Package storage implements the document storage port on the local
// filesystem.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalDocumentStorage stores uploaded evidence under a base directory,
// one subdirectory per user.
type LocalDocumentStorage struct {
	baseDir string
}

// NewLocalDocumentStorage creates a LocalDocumentStorage rooted at baseDir.
func NewLocalDocumentStorage(baseDir string) (*LocalDocumentStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create document directory: %w", err)
	}
	return &LocalDocumentStorage{baseDir: baseDir}, nil
}

// Store writes the bytes and returns the file reference. The stored
// name is prefixed with a fresh UUID so repeated uploads of the same
// filename never collide.
func (s *LocalDocumentStorage) Store(_ context.Context, userID, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create user directory: %w", err)
	}

	safeName := sanitizeFilename(filename)
	ref := filepath.Join(dir, uuid.New().String()+"-"+safeName)
	if err := os.WriteFile(ref, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return ref, nil
}

// Load reads previously stored bytes back.
func (s *LocalDocumentStorage) Load(_ context.Context, ref string) ([]byte, error) {
	clean := filepath.Clean(ref)
	if !strings.HasPrefix(clean, filepath.Clean(s.baseDir)+string(filepath.Separator)) {
		return nil, fmt.Errorf("reference outside storage root: %s", ref)
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

// sanitizeFilename strips path separators and control characters from
// an uploaded filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		if r < 32 || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
}
