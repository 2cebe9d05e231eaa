package files

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"time"

	"secure-file-server/core/storage"
)

// Entry is a file or directory under the root.
type Entry struct {
	// Name is the last element of Path ("." for the root).
	Name string
	// Path is the slash-separated path relative to the root.
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Backend is a read-only view of the root.
// Names passed to Stat, Open and List come from Resolve.
type Backend interface {
	// Root describes the served location for operators.
	Root() string
	// Ensure creates the root if it does not exist and prepares it for serving.
	// It reports whether the root had to be created.
	Ensure(ctx context.Context) (created bool, err error)
	Stat(ctx context.Context, name string) (Entry, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	List(ctx context.Context, name string) ([]Entry, error)
}

// NewBackend builds the backend selected by cfg.Driver for root.
func NewBackend(cfg storage.Config, root string) (Backend, error) {
	switch cfg.Driver {
	case storage.DriverLocal, "":
		return NewLocal(root), nil
	case storage.DriverS3:
		client, err := storage.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewBucket(client, cfg.Bucket, cfg.Region, root), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func entryFromInfo(name string, info fs.FileInfo) Entry {
	return Entry{
		Name:    baseName(name),
		Path:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
}

func baseName(name string) string {
	if name == "" {
		return "."
	}
	return path.Base(name)
}
