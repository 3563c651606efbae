package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gofold/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "test.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

		got, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(got))
	})

	t.Run("missing file is ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory is ErrIsDirectory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.ReadFile(ctx, "anypath")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestReadFileLimit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0o644))

	_, err := fsutil.ReadFileLimit(context.Background(), path, 16)
	assert.ErrorIs(t, err, fsutil.ErrTooLarge)

	got, err := fsutil.ReadFileLimit(context.Background(), path, 64)
	require.NoError(t, err)
	assert.Len(t, got, 64)

	got, err = fsutil.ReadFileLimit(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Len(t, got, 64)
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	assert.True(t, fsutil.Exists(path))
	assert.False(t, fsutil.Exists(dir))
	assert.False(t, fsutil.Exists(filepath.Join(dir, "b.txt")))
}
