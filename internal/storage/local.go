// Package storage keeps uploaded image blobs on the local filesystem,
// addressed by generated file names under a single static directory.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LocalStore writes uploads into a flat directory served as static files
type LocalStore struct {
	dir    string
	logger *logrus.Entry
}

func NewLocalStore(dir string, logger *logrus.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create static dir %s: %w", dir, err)
	}
	return &LocalStore{
		dir:    dir,
		logger: logger.WithField("component", "storage.local"),
	}, nil
}

// Dir returns the directory served as static content
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save stores an uploaded file under a fresh uuid name, keeping the
// original extension, and returns the generated file name.
func (s *LocalStore) Save(header *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.New().String() + ext

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored file. Failures are logged and swallowed: a
// dangling blob never blocks deleting the database record it backed.
func (s *LocalStore) Remove(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.WithError(err).WithField("file", name).Warn("Failed to remove stored file")
	}
}
