package pool

import "sync"

// SyncPool wraps a BoundedPool with a single mutex held for the duration of
// each operation, making it safe for concurrent use. No pool operation
// blocks or performs I/O, so lock hold times are short and bounded.
type SyncPool[T any] struct {
	mu    sync.Mutex
	inner *BoundedPool[T]
}

// NewSync creates a mutex-guarded pool with the same factory and options as
// New. The factory and hooks run while the lock is held and must not call
// back into the pool.
func NewSync[T any](factory func() T, opts ...Option[T]) *SyncPool[T] {
	return &SyncPool[T]{
		inner: New(factory, opts...),
	}
}

// Acquire returns an item for exclusive use by the caller.
func (p *SyncPool[T]) Acquire() (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.Acquire()
}

// Release returns an item to the idle set.
func (p *SyncPool[T]) Release(item T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inner.Release(item)
}

// Trim destroys idle items until at most targetIdle remain.
func (p *SyncPool[T]) Trim(targetIdle int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inner.Trim(targetIdle)
}

// Dispose tears the pool down, destroying every idle item.
func (p *SyncPool[T]) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inner.Dispose()
}

// Prewarm creates up to n idle items, stopping at the pool bound, and
// returns the number created.
func (p *SyncPool[T]) Prewarm(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.Prewarm(n)
}

// Len returns the current number of idle items.
func (p *SyncPool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.Len()
}

// Live returns the number of items created and not yet destroyed.
func (p *SyncPool[T]) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.Live()
}

// Cap returns the configured bound on live items, or 0 when unbounded.
func (p *SyncPool[T]) Cap() int {
	return p.inner.Cap()
}

// Stats returns a snapshot of lifetime counters and current gauges.
func (p *SyncPool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.Stats()
}
