// Package localdisk stores rendered documents as plain files under a
// configured root directory. The returned location is the absolute file path,
// which goes into the order's document reference as-is.
package localdisk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"orders/internal/pkg/errs"
)

// Storage implements DocumentStorage on the local filesystem.
type Storage struct {
	root string
}

// NewStorage creates the root directory if needed and returns a Storage
// writing into it.
func NewStorage(root string) (*Storage, error) {
	if root == "" {
		return nil, errs.NewValueIsRequiredError("root")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create document root %q: %w", root, err)
	}

	return &Storage{root: root}, nil
}

// Store writes the payload under the given filename and returns the absolute
// path of the written file.
func (s *Storage) Store(_ context.Context, filename string, payload []byte) (string, error) {
	if filename == "" {
		return "", errs.NewValueIsRequiredError("filename")
	}

	path := filepath.Join(s.root, filepath.Base(filename))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write document %q: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve document path %q: %w", path, err)
	}

	return abs, nil
}
