package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDownload(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := store.Upload(ctx, strings.NewReader("%PDF-1.3"), "reports/2025/01/asistencia-2025-01-01.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "reports/2025/01/asistencia-2025-01-01.pdf", key)

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Download(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestLocalStorage_Missing(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "reports/nope.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Download(ctx, "reports/nope.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Upload(ctx, strings.NewReader("x"), "../../etc/passwd", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = store.Download(ctx, "reports/../../secret")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_List(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{
		"reports/2025/02/asistencia-2025-02-01.pdf",
		"reports/2025/01/asistencia-2025-01-31.pdf",
		"other/file.txt",
	} {
		_, err := store.Upload(ctx, strings.NewReader("x"), key, "application/pdf")
		require.NoError(t, err)
	}

	keys, err := store.List(ctx, "reports")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"reports/2025/01/asistencia-2025-01-31.pdf",
		"reports/2025/02/asistencia-2025-02-01.pdf",
	}, keys)

	keys, err = store.List(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
