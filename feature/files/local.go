package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

var errNotEnsured = errors.New("local root not opened, call Ensure first")

// Local serves files from a directory on disk.
// All access goes through an os.Root, so symlinks cannot escape the directory.
type Local struct {
	dir  string
	root *os.Root
}

// NewLocal creates a backend for dir. Ensure must be called before serving.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Root returns the absolute directory path when it can be determined.
func (l *Local) Root() string {
	abs, err := filepath.Abs(l.dir)
	if err != nil {
		return l.dir
	}
	return abs
}

// Ensure creates the directory recursively if missing, then opens it.
func (l *Local) Ensure(ctx context.Context) (bool, error) {
	created := false

	info, err := os.Stat(l.dir)
	switch {
	case err == nil && !info.IsDir():
		return false, fmt.Errorf("%w: %s is not a directory", ErrFilesystem, l.dir)
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(l.dir, 0o755); err != nil {
			return false, fmt.Errorf("%w: %w", ErrFilesystem, err)
		}
		created = true
	case err != nil:
		return false, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	root, err := os.OpenRoot(l.dir)
	if err != nil {
		return created, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	l.root = root
	return created, nil
}

// Close releases the directory handle.
func (l *Local) Close() error {
	if l.root == nil {
		return nil
	}
	return l.root.Close()
}

func (l *Local) Stat(ctx context.Context, name string) (Entry, error) {
	if l.root == nil {
		return Entry{}, errNotEnsured
	}
	info, err := l.root.Stat(osName(name))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return entryFromInfo(name, info), nil
}

func (l *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if l.root == nil {
		return nil, errNotEnsured
	}
	f, err := l.root.Open(osName(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return f, nil
}

func (l *Local) List(ctx context.Context, name string) ([]Entry, error) {
	if l.root == nil {
		return nil, errNotEnsured
	}
	dir, err := l.root.Open(osName(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	defer dir.Close()

	dirEntries, err := dir.ReadDir(-1)
	if err != nil {
		// Unreadable directories are answered like missing ones.
		return nil, fmt.Errorf("%w: cannot list %q: %w", ErrNotFound, name, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		child := path.Join(name, de.Name())
		// Stat through the root so symlinks are followed only when they stay inside it.
		info, err := l.root.Stat(osName(child))
		if err != nil {
			continue
		}
		entries = append(entries, entryFromInfo(child, info))
	}
	return entries, nil
}

func osName(name string) string {
	if name == "" {
		return "."
	}
	return filepath.FromSlash(name)
}
