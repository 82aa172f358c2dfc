package drawings

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"p9e.in/fabtrack/config"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2024, 5, 16, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		original string
		suffix   string
	}{
		{"plain", "ground floor.pdf", "-ground_floor.pdf"},
		{"traversal", "../../etc/passwd", "-passwd"},
		{"windows path", `C:\drawings\AHU-1.dwg`, "-AHU-1.dwg"},
		{"empty", "", "-drawing"},
		{"only dots", "...", "-drawing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ObjectName(tt.original, now)
			assert.True(t, strings.HasPrefix(got, "20240516-093000-"), got)
			assert.True(t, strings.HasSuffix(got, tt.suffix), got)
			assert.NoError(t, validName(got))
		})
	}

	assert.NotEqual(t, ObjectName("a.pdf", now), ObjectName("a.pdf", now))
}

func TestLocalStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	name, err := store.Save(ctx, "layout.pdf", "application/pdf", strings.NewReader("%PDF-1.4"), 8)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, name))

	rc, err := store.Open(ctx, name)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))

	require.NoError(t, store.Delete(ctx, name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	_, err = store.Open(ctx, name)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.Delete(ctx, name), "deleting twice is fine")
}

func TestLocalStoreRejectsEscapingNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", "..", "../secret", "a/b.pdf", `a\b.pdf`} {
		_, err := store.Open(ctx, name)
		assert.Error(t, err, name)
		assert.NotErrorIs(t, err, ErrNotFound, name)
		assert.Error(t, store.Delete(ctx, name), name)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)

	s, err := New(context.Background(), config.StorageConfig{Driver: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, s)
}
