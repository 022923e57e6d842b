// Package upload stores files received in multipart requests.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/greenfund/core/internal/infrastructure/config"
	"github.com/greenfund/core/internal/infrastructure/logger"
)

// URLPrefix is where stored files are served from
const URLPrefix = "/uploads/"

const (
	suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixSize     = 12
	maxExtLen      = 10
)

var (
	// ErrNotFound is returned by Open for unknown names
	ErrNotFound = errors.New("upload: file not found")
	// ErrInvalidName is returned by Open for names that could escape the store
	ErrInvalidName = errors.New("upload: invalid file name")
)

// Uploader persists uploaded files under generated names
type Uploader interface {
	// Save stores the file and returns its generated name
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove deletes a stored file. Removing a missing file is not an error.
	Remove(ctx context.Context, name string) error
}

// RemoveAll deletes every named file, logging the ones that could not be
// removed so they can be cleaned up by hand.
func RemoveAll(ctx context.Context, u Uploader, names []string, log *logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	for _, name := range names {
		if err := u.Remove(ctx, name); err != nil {
			log.WithError(err).Warnw("Failed to remove orphaned upload", "name", name)
		}
	}
}

// New builds the uploader selected by cfg.Driver
func New(ctx context.Context, cfg config.UploadConfig, log *logger.Logger) (Uploader, error) {
	switch cfg.Driver {
	case "", config.UploadDriverLocal:
		return NewLocal(cfg.Dir, log)
	case config.UploadDriverS3:
		return NewS3(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.Driver)
	}
}

// URL returns the public path of a stored file
func URL(name string) string {
	return URLPrefix + name
}

// NewName returns "<unix-ms>-<random><ext>" for an uploaded file name
func NewName(original string) (string, error) {
	suffix, err := gonanoid.Generate(suffixAlphabet, suffixSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate upload name: %w", err)
	}

	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, extension(original)), nil
}

// extension keeps the original extension when it is short and alphanumeric
func extension(original string) string {
	ext := filepath.Ext(filepath.Base(strings.ReplaceAll(original, `\`, "/")))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return strings.ToLower(ext)
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
