package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/config"
)

// SweepFunc is an auxiliary cleanup hook run on every sweep, after artifact
// eviction. Used for in-memory state with its own expiry, such as stale
// authentication sessions.
type SweepFunc func(now time.Time)

// Sweeper periodically evicts expired artifacts from a Store. One sweep runs
// at a time; a tick arriving while a sweep is still in flight is skipped.
type Sweeper struct {
	store    *Store
	maxAge   time.Duration
	interval time.Duration
	extra    []SweepFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *zap.SugaredLogger

	mu          sync.Mutex
	sweepActive bool
	lastSweepAt time.Time
	sweeps      int64
}

// NewSweeper creates a sweeper over the given store. extra hooks run on
// every sweep after artifact eviction.
func NewSweeper(store *Store, cfg config.StorageConfig, logger *zap.SugaredLogger, extra ...SweepFunc) *Sweeper {
	return NewSweeperWithContext(context.Background(), store, cfg, logger, extra...)
}

// NewSweeperWithContext creates a sweeper bound to a parent context.
func NewSweeperWithContext(ctx context.Context, store *Store, cfg config.StorageConfig, log *zap.SugaredLogger, extra ...SweepFunc) *Sweeper {
	maxAge := time.Duration(cfg.CleanupHours) * time.Hour
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	interval := time.Duration(cfg.SweepIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	sweeperCtx, cancel := context.WithCancel(ctx)
	return &Sweeper{
		store:    store,
		maxAge:   maxAge,
		interval: interval,
		extra:    extra,
		ctx:      sweeperCtx,
		cancel:   cancel,
		logger:   log.Named("sweeper"),
	}
}

// Start begins the sweep loop.
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.run()
	s.logger.Infow("Storage sweeper started", "interval", s.interval, "max_age", s.maxAge)
}

// Stop gracefully stops the sweep loop, waiting for an in-flight sweep.
func (s *Sweeper) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Infow("Storage sweeper stopped")
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case tickTime := <-ticker.C:
			s.SweepNow(tickTime)
		}
	}
}

// SweepNow runs a single sweep immediately. Returns false if another sweep
// was already in flight.
func (s *Sweeper) SweepNow(now time.Time) bool {
	s.mu.Lock()
	if s.sweepActive {
		s.mu.Unlock()
		s.logger.Debugw("Skipping sweep, previous sweep still active")
		return false
	}
	s.sweepActive = true
	s.lastSweepAt = now
	s.sweeps++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.sweepActive = false
		s.mu.Unlock()
	}()

	s.store.EvictOlderThan(s.maxAge)
	for _, fn := range s.extra {
		fn(now)
	}
	return true
}

// LastSweep reports when the most recent sweep started and how many sweeps
// have run since Start.
func (s *Sweeper) LastSweep() (time.Time, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSweepAt, s.sweeps
}
