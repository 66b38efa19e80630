// Package file stores records in a single JSON or YAML document on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/pkg/logger"
)

// Storage reads and writes one data file. The format follows the file extension.
type Storage struct {
	path   string
	format persistence.Format
	log    *logger.Logger
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Storage) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFormat overrides the format chosen from the extension.
func WithFormat(f persistence.Format) Option {
	return func(s *Storage) {
		s.format = f
	}
}

// New creates a file Storage for path. Nothing is touched on disk until Load or Save.
func New(path string, opts ...Option) *Storage {
	s := &Storage{
		path:   path,
		format: persistence.FormatForPath(path),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Backend("file"), logger.String("path", path))
	return s
}

// Path returns the data file path.
func (s *Storage) Path() string {
	return s.path
}

// Load reads and validates the data file.
func (s *Storage) Load(ctx context.Context) (store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return store.Snapshot{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.Snapshot{}, shared.WrapError("storage", "Load", shared.ErrDataNotFound,
				"Data file not found", err)
		}
		return store.Snapshot{}, fmt.Errorf("file: read %s: %w", s.path, err)
	}

	snap, err := persistence.DecodeSnapshot(data, s.format)
	if err != nil {
		return store.Snapshot{}, err
	}

	s.log.Info("data loaded", logger.Records(snap.Size()))
	return snap, nil
}

// Save writes the snapshot atomically: a temp file in the same directory is
// synced and then renamed over the data file.
func (s *Storage) Save(ctx context.Context, snap store.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := persistence.Encode(persistence.FromSnapshot(snap), s.format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("file: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("file: replace %s: %w", s.path, err)
	}

	s.log.Info("data saved", logger.Records(snap.Size()))
	return nil
}
