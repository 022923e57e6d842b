package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/greenfund/core/internal/infrastructure/logger"
)

// LocalStorage keeps uploads in a directory on disk
type LocalStorage struct {
	dir    string
	logger *logger.Logger
}

// NewLocal creates the upload directory if needed
func NewLocal(dir string, log *logger.Logger) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &LocalStorage{dir: dir, logger: log.WithComponent("upload")}, nil
}

func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name, err := NewName(fh.Filename)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Debugw("Stored upload", "name", name, "original", fh.Filename, "bytes", n)
	return name, nil
}

func (s *LocalStorage) Remove(ctx context.Context, name string) error {
	if !validName(name) {
		return ErrInvalidName
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	s.logger.Debugw("Removed upload", "name", name)
	return nil
}

func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}
