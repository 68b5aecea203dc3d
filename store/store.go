package store

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
)

var (
	// ErrInvalidArtifactName reports a download name that is not a plain
	// file name, such as one carrying path separators.
	ErrInvalidArtifactName = errors.New("invalid artifact name")

	// ErrArtifactNotFound reports a well-formed name with no file behind
	// it, typically because the artifact was already evicted.
	ErrArtifactNotFound = errors.New("artifact not found")
)

// Store is the flat directory holding generated artifacts between the
// moment a request produces them and the moment the sweeper evicts them.
type Store struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewStore opens the artifact directory, creating it if needed.
func NewStore(cfg config.StorageConfig, logger *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, config.DefaultDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to create storage directory %s", cfg.Dir)
	}
	return &Store{
		dir:    cfg.Dir,
		logger: logger.Named("store"),
	}, nil
}

// Dir returns the backing directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Lookup resolves a stored artifact by its bare file name. Names that
// could escape the directory are rejected as ErrInvalidArtifactName
// before any filesystem access.
func (s *Store) Lookup(filename string) (string, error) {
	if filename == "" ||
		filename != filepath.Base(filename) ||
		strings.ContainsAny(filename, `/\`) ||
		strings.Contains(filename, "..") {
		return "", errors.Wrapf(ErrInvalidArtifactName, "%q", filename)
	}

	path := filepath.Join(s.dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", errors.Wrapf(ErrArtifactNotFound, "%q", filename)
	}
	return path, nil
}

// EvictOlderThan removes every artifact whose modification time is older
// than maxAge. Individual removal failures are logged and skipped so one
// stuck file never blocks the rest of the sweep.
func (s *Store) EvictOlderThan(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Errorw("Failed to read storage directory", "dir", s.dir, "error", err)
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.logger.Warnw("Failed to stat artifact", "name", entry.Name(), "error", err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warnw("Failed to evict artifact", "path", path, "error", err)
			continue
		}
		removed++
		s.logger.Debugw("Evicted expired artifact", "name", entry.Name(), "age", time.Since(info.ModTime()).Round(time.Second))
	}

	if removed > 0 {
		s.logger.Infow("Storage sweep removed artifacts", "count", removed)
	}
	return removed
}
