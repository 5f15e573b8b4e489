package pool

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Janitor periodically trims a SyncPool back to an idle floor, reclaiming
// capacity after a usage spike. It only ever removes idle items; checked-out
// items are untouched.
type Janitor[T any] struct {
	pool     *SyncPool[T]
	interval time.Duration
	floor    int
	log      *zap.Logger
}

// NewJanitor creates a janitor that trims pool to at most floor idle items
// every interval. A nil logger disables sweep logging.
func NewJanitor[T any](pool *SyncPool[T], interval time.Duration, floor int, log *zap.Logger) *Janitor[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Janitor[T]{
		pool:     pool,
		interval: interval,
		floor:    floor,
		log:      log,
	}
}

// Run sweeps until ctx is canceled. It is typically started in its own
// goroutine alongside the pool it maintains:
//
//	go janitor.Run(ctx)
func (j *Janitor[T]) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.log.Debug("janitor started",
		zap.Duration("interval", j.interval),
		zap.Int("idle_floor", j.floor))

	for {
		select {
		case <-ctx.Done():
			j.log.Debug("janitor stopped")
			return
		case <-ticker.C:
			before := j.pool.Len()
			j.pool.Trim(j.floor)
			if trimmed := before - j.pool.Len(); trimmed > 0 {
				j.log.Debug("trimmed idle items",
					zap.Int("trimmed", trimmed),
					zap.Int("idle", j.pool.Len()))
			}
		}
	}
}
