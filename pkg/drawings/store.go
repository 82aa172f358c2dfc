// Package drawings stores the source drawings uploaded with projects.
package drawings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"p9e.in/fabtrack/config"
)

// ErrNotFound is returned by Open for an unknown object name.
var ErrNotFound = errors.New("drawing not found")

// Store keeps drawing files under generated object names.
type Store interface {
	// Save writes r and returns the object name to persist on the project.
	Save(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocalStore(cfg.LocalDir)
	case "gcs":
		return NewGCSStore(ctx, cfg.Bucket)
	case "minio":
		return NewMinIOStore(ctx, cfg.MinIO, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectName derives a collision-free, path-safe name from the uploaded
// file name, e.g. "20240516-093000-1a2b3c4d-ground_floor.pdf".
func ObjectName(originalName string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(originalName, `\`, "/"))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")
	if base == "" {
		base = "drawing"
	}
	if len(base) > 100 {
		ext := filepath.Ext(base)
		if len(ext) > 10 {
			ext = ""
		}
		base = base[:100-len(ext)] + ext
	}
	return fmt.Sprintf("%s-%s-%s", now.Format("20060102-150405"), uuid.New().String()[:8], base)
}

// validName rejects names that could escape the store's root.
func validName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid drawing name %q", name)
	}
	return nil
}
