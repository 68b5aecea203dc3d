package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(config.StorageConfig{Dir: t.TempDir()}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return s
}

func writeArtifact(t *testing.T, s *Store, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(s.Dir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-stub"), 0o644))
	if age > 0 {
		old := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, old, old))
	}
	return path
}

func TestLookup(t *testing.T) {
	s := newTestStore(t)
	want := writeArtifact(t, s, "evento_a4.pdf", 0)

	got, err := s.Lookup("evento_a4.pdf")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLookupMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Lookup("nope.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactNotFound))
}

func TestLookupRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{
		"",
		"../etc/passwd",
		"..",
		"sub/evento_a4.pdf",
		`..\evento.pdf`,
		"/etc/passwd",
	} {
		_, err := s.Lookup(name)
		require.Error(t, err, "name %q", name)
		assert.True(t, errors.Is(err, ErrInvalidArtifactName), "name %q", name)
	}
}

func TestLookupRejectsDirectory(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "nested"), 0o755))

	_, err := s.Lookup("nested")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactNotFound))
}

func TestEvictOlderThan(t *testing.T) {
	s := newTestStore(t)
	oldPath := writeArtifact(t, s, "stale_a4.pdf", 48*time.Hour)
	freshPath := writeArtifact(t, s, "fresh_a4.pdf", 0)

	// Directories survive sweeps
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "keepdir"), 0o755))

	removed := s.EvictOlderThan(24 * time.Hour)
	assert.Equal(t, 1, removed)

	_, err := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(freshPath)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.Dir(), "keepdir"))
	assert.NoError(t, err)

	// A second sweep finds nothing new to remove
	assert.Equal(t, 0, s.EvictOlderThan(24*time.Hour))
	_, err = os.Stat(freshPath)
	assert.NoError(t, err)
}

func TestSweeperRunsExtraHooks(t *testing.T) {
	s := newTestStore(t)
	writeArtifact(t, s, "stale_a4.pdf", 48*time.Hour)

	var hookRuns int
	sw := NewSweeper(s, config.StorageConfig{
		Dir:                  s.Dir(),
		CleanupHours:         24,
		SweepIntervalMinutes: 60,
	}, zap.NewNop().Sugar(), func(time.Time) { hookRuns++ })

	assert.True(t, sw.SweepNow(time.Now()))
	assert.Equal(t, 1, hookRuns)

	_, err := os.Stat(filepath.Join(s.Dir(), "stale_a4.pdf"))
	assert.True(t, os.IsNotExist(err))

	_, sweeps := sw.LastSweep()
	assert.EqualValues(t, 1, sweeps)
}

func TestSweeperStartStop(t *testing.T) {
	s := newTestStore(t)
	sw := NewSweeper(s, config.StorageConfig{
		Dir:                  s.Dir(),
		CleanupHours:         24,
		SweepIntervalMinutes: 60,
	}, zap.NewNop().Sugar())

	sw.Start()
	sw.Stop()
}
