package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/floroz/gavel-auctions/internal/domain/images"
)

// FilesystemStore implements images.Store as one file per blob in a directory.
type FilesystemStore struct {
	dir string
}

// NewFilesystemStore creates dir if needed.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &FilesystemStore{dir: dir}, nil
}

// path confines filename to the store directory.
func (s *FilesystemStore) path(filename string) (string, error) {
	base := filepath.Base(filename)
	if base != filename || base == "." || base == ".." {
		return "", fmt.Errorf("invalid image filename %q", filename)
	}
	return filepath.Join(s.dir, base), nil
}

// Put writes to a temporary file and renames it, so readers never see a partial image.
func (s *FilesystemStore) Put(_ context.Context, filename string, data []byte) error {
	dst, err := s.path(filename)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to store %s: %w", filename, err)
	}
	return nil
}

func (s *FilesystemStore) Get(_ context.Context, filename string) ([]byte, error) {
	p, err := s.path(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, images.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return data, nil
}

func (s *FilesystemStore) Delete(_ context.Context, filename string) error {
	p, err := s.path(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return images.ErrImageNotFound
		}
		return fmt.Errorf("failed to delete %s: %w", filename, err)
	}
	return nil
}
