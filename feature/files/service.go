package files

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service resolves request paths against a backend.
type Service struct {
	backend Backend
	logger  *zap.Logger
}

// NewService creates a new file service.
func NewService(backend Backend, logger *zap.Logger) *Service {
	return &Service{
		backend: backend,
		logger:  logger,
	}
}

// Stat resolves requestPath under the root and returns its entry.
func (s *Service) Stat(ctx context.Context, requestPath string) (Entry, error) {
	name, err := Resolve(requestPath)
	if err != nil {
		return Entry{}, err
	}
	return s.backend.Stat(ctx, name)
}

// Index returns the first index file present in dir, in IndexFiles order.
// Candidates are probed in parallel since each probe may be a remote call.
func (s *Service) Index(ctx context.Context, dir Entry) (Entry, error) {
	found := make([]*Entry, len(IndexFiles))

	g, ctxGroup := errgroup.WithContext(ctx)
	for i, index := range IndexFiles {
		g.Go(func() error {
			entry, err := s.backend.Stat(ctxGroup, path.Join(dir.Path, index))
			switch {
			case err == nil:
				if !entry.IsDir {
					found[i] = &entry
				}
				return nil
			case errors.Is(err, ErrNotFound):
				// A missing candidate is not a failure
				return nil
			default:
				return err
			}
		})
	}
	if err := g.Wait(); err != nil {
		return Entry{}, err
	}

	for _, entry := range found {
		if entry != nil {
			return *entry, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Open opens a file entry for reading.
func (s *Service) Open(ctx context.Context, entry Entry) (io.ReadCloser, error) {
	return s.backend.Open(ctx, entry.Path)
}

// List returns the children of dir sorted case-insensitively by name.
func (s *Service) List(ctx context.Context, dir Entry) ([]Entry, error) {
	entries, err := s.backend.List(ctx, dir.Path)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}
