package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/google/uuid"
)

// LocalStore writes uploads below Root. Root is what the router serves at
// /uploads.
type LocalStore struct {
	Root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{Root: root}, nil
}

func (s *LocalStore) Save(_ context.Context, dst payload.Destination, u payload.Upload) (string, error) {
	object := objectName(dst, u, uuid.NewString())
	full := filepath.Join(s.Root, filepath.FromSlash(object))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, u.Data, 0o644); err != nil {
		return "", err
	}
	return publicPath(object), nil
}

// Remove deletes a previously saved file. Missing files are not an error.
func (s *LocalStore) Remove(_ context.Context, path string) error {
	object, err := objectFromPath(path)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.Root, filepath.FromSlash(object)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
