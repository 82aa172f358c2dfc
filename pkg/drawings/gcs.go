package drawings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// GCSStore keeps drawings in a Google Cloud Storage bucket. Credentials come
// from the environment (GOOGLE_APPLICATION_CREDENTIALS or the metadata server).
type GCSStore struct {
	client *storage.Client
	bucket string
	now    func() time.Time
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, now: time.Now}, nil
}

func (s *GCSStore) Save(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (string, error) {
	name := ObjectName(originalName, s.now())
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload drawing: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to upload drawing: %w", err)
	}
	return name, nil
}

func (s *GCSStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	rc, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if err != nil {
		return nil, gcsError("read", err)
	}
	return rc, nil
}

func (s *GCSStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	err := s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err := gcsError("delete", err); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// gcsError maps a missing object to ErrNotFound and wraps anything else.
func gcsError(action string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrObjectNotExist):
		return ErrNotFound
	default:
		return fmt.Errorf("failed to %s drawing: %w", action, err)
	}
}
