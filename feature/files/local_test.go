package files

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLocal_Ensure(t *testing.T) {
	t.Run("Creates Missing Root", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "shared")
		backend := NewLocal(dir)

		created, err := backend.Ensure(context.Background())
		require.NoError(t, err)
		defer backend.Close()
		assert.True(t, created)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Existing Root", func(t *testing.T) {
		backend := NewLocal(t.TempDir())
		created, err := backend.Ensure(context.Background())
		require.NoError(t, err)
		defer backend.Close()
		assert.False(t, created)
	})

	t.Run("Root Is A File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		writeFile(t, file, "x")

		_, err := NewLocal(file).Ensure(context.Background())
		assert.ErrorIs(t, err, ErrFilesystem)
	})

	t.Run("Parent Is A File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		writeFile(t, file, "x")

		_, err := NewLocal(filepath.Join(file, "shared")).Ensure(context.Background())
		assert.ErrorIs(t, err, ErrFilesystem)
	})
}

func TestLocal_ReadOperations(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	writeFile(t, filepath.Join(root, "index.html"), "Hello")
	writeFile(t, filepath.Join(root, "docs", "b.txt"), "bee")
	writeFile(t, filepath.Join(root, "docs", "A.txt"), "ay")
	writeFile(t, filepath.Join(base, "secret.txt"), "top secret")
	require.NoError(t, os.Symlink(filepath.Join("..", "secret.txt"), filepath.Join(root, "escape.txt")))
	require.NoError(t, os.Symlink("index.html", filepath.Join(root, "alias.html")))

	backend := NewLocal(root)
	_, err := backend.Ensure(context.Background())
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	t.Run("Stat Root", func(t *testing.T) {
		e, err := backend.Stat(ctx, "")
		require.NoError(t, err)
		assert.True(t, e.IsDir)
		assert.Equal(t, ".", e.Name)
	})

	t.Run("Stat File", func(t *testing.T) {
		e, err := backend.Stat(ctx, "docs/b.txt")
		require.NoError(t, err)
		assert.False(t, e.IsDir)
		assert.Equal(t, "b.txt", e.Name)
		assert.Equal(t, "docs/b.txt", e.Path)
		assert.Equal(t, int64(3), e.Size)
	})

	t.Run("Stat Missing", func(t *testing.T) {
		_, err := backend.Stat(ctx, "missing.txt")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Symlink Escaping Root", func(t *testing.T) {
		_, err := backend.Stat(ctx, "escape.txt")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = backend.Open(ctx, "escape.txt")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Symlink Inside Root", func(t *testing.T) {
		e, err := backend.Stat(ctx, "alias.html")
		require.NoError(t, err)
		assert.Equal(t, int64(5), e.Size)
	})

	t.Run("Open", func(t *testing.T) {
		rc, err := backend.Open(ctx, "index.html")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "Hello", string(data))
	})

	t.Run("List", func(t *testing.T) {
		entries, err := backend.List(ctx, "")
		require.NoError(t, err)

		names := map[string]bool{}
		for _, e := range entries {
			names[e.Name] = e.IsDir
		}
		assert.Equal(t, map[string]bool{"index.html": false, "docs": true, "alias.html": false}, names)
	})

	t.Run("List Nested", func(t *testing.T) {
		entries, err := backend.List(ctx, "docs")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, e := range entries {
			assert.Contains(t, []string{"docs/A.txt", "docs/b.txt"}, e.Path)
		}
	})
}

func TestLocal_NotEnsured(t *testing.T) {
	backend := NewLocal(t.TempDir())
	_, err := backend.Stat(context.Background(), "")
	assert.Error(t, err)
	_, err = backend.Open(context.Background(), "x")
	assert.Error(t, err)
	_, err = backend.List(context.Background(), "")
	assert.Error(t, err)
	assert.NoError(t, backend.Close())
}
