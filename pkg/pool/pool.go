// Package pool provides bounded, dynamically growable object pooling with
// lifecycle callbacks. Unlike sync.Pool, a BoundedPool owns its idle items
// explicitly: it enforces an optional hard cap on live instances, hands the
// caller a typed error when the cap is hit, and supports explicit shrinking
// and teardown with a destroy callback per item.
//
// Example usage:
//
//	p := pool.New(
//	    func() *Conn { return dial() },
//	    pool.WithMaxSize[*Conn](64),
//	    pool.WithOnDestroy(func(c *Conn) { c.Close() }),
//	)
//	conn, err := p.Acquire()
//	if err != nil {
//	    // pool is bounded and full; caller decides what to do
//	}
//	defer p.Release(conn)
package pool

import (
	"github.com/repool/repool/pkg/errors"
)

// BoundedPool is a generic object pool with an optional upper bound on the
// number of live items. Idle items are reused most-recently-released first
// (LIFO) for cache locality.
//
// The pool does not track checked-out items by identity: once Acquire hands
// an item out, ownership transfers to the caller until Release. Releasing an
// item twice without an intervening Acquire, or releasing an item the pool
// never produced, silently corrupts the idle set. Use TrackedPool when that
// guarantee is worth the bookkeeping.
//
// A BoundedPool is not safe for concurrent use. It assumes a single logical
// owner; wrap it in a SyncPool for shared access.
type BoundedPool[T any] struct {
	factory   func() T
	onAcquire func(T)
	onRelease func(T)
	onDestroy func(T)

	available []T
	live      int
	maxSize   int
	disposed  bool

	stats counters
}

// counters accumulates lifetime totals for Stats snapshots.
type counters struct {
	created   int64
	reused    int64
	destroyed int64
	exhausted int64
}

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	// Created is the total number of items produced by the factory
	Created int64 `json:"created"`
	// Reused is the total number of acquisitions served from the idle set
	Reused int64 `json:"reused"`
	// Destroyed is the total number of items destroyed by Trim or Dispose
	Destroyed int64 `json:"destroyed"`
	// Exhausted is the total number of acquisitions rejected at the cap
	Exhausted int64 `json:"exhausted"`
	// Idle is the current number of items available for reuse
	Idle int `json:"idle"`
	// Live is the current number of items created and not yet destroyed,
	// idle and checked out combined
	Live int `json:"live"`
}

// Option configures a BoundedPool at construction time.
type Option[T any] func(*BoundedPool[T])

// WithMaxSize bounds the pool to at most max live items. Acquire fails with
// an exhausted error once the bound is reached and no idle item is available.
// A max of zero or less leaves the pool unbounded.
func WithMaxSize[T any](max int) Option[T] {
	return func(p *BoundedPool[T]) {
		p.maxSize = max
	}
}

// WithOnAcquire sets a hook invoked on every item handed out by Acquire,
// after the item is selected and before it is returned. Typical use is
// marking the item active.
func WithOnAcquire[T any](fn func(T)) Option[T] {
	return func(p *BoundedPool[T]) {
		p.onAcquire = fn
	}
}

// WithOnRelease sets a hook invoked on every item passed to Release, before
// the item rejoins the idle set. Typical use is resetting transient state.
func WithOnRelease[T any](fn func(T)) Option[T] {
	return func(p *BoundedPool[T]) {
		p.onRelease = fn
	}
}

// WithOnDestroy sets a hook invoked on every item destroyed by Trim or
// Dispose. Typical use is releasing underlying resources.
func WithOnDestroy[T any](fn func(T)) Option[T] {
	return func(p *BoundedPool[T]) {
		p.onDestroy = fn
	}
}

// New creates a BoundedPool that produces items with factory. The factory
// must return a usable item; the pool never inspects items beyond passing
// them to the configured hooks.
//
// Example:
//
//	bufPool := pool.New(
//	    func() *bytes.Buffer { return &bytes.Buffer{} },
//	    pool.WithMaxSize[*bytes.Buffer](128),
//	    pool.WithOnRelease(func(b *bytes.Buffer) { b.Reset() }),
//	)
func New[T any](factory func() T, opts ...Option[T]) *BoundedPool[T] {
	p := &BoundedPool[T]{
		factory: factory,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire returns an item for exclusive use by the caller. Idle items are
// reused before the factory is consulted; the factory runs only when the
// idle set is empty and the live count is below the bound. Acquire never
// blocks and never retries: when the pool is bounded and full it fails
// immediately with an exhausted error, and the caller decides whether to
// back off, shed load, or raise capacity.
func (p *BoundedPool[T]) Acquire() (T, error) {
	var zero T

	if p.disposed {
		return zero, errors.New(errors.ErrorTypeDisposed, "acquire on disposed pool")
	}

	if n := len(p.available); n > 0 {
		item := p.available[n-1]
		p.available[n-1] = zero // drop the reference
		p.available = p.available[:n-1]
		p.stats.reused++
		if p.onAcquire != nil {
			p.onAcquire(item)
		}
		return item, nil
	}

	if p.maxSize > 0 && p.live >= p.maxSize {
		p.stats.exhausted++
		return zero, errors.New(errors.ErrorTypeExhausted, "pool exhausted").
			WithDetail("max_size", p.maxSize)
	}

	item := p.factory()
	p.live++
	p.stats.created++
	if p.onAcquire != nil {
		p.onAcquire(item)
	}
	return item, nil
}

// Release returns an item to the idle set. The release hook runs first, then
// the item becomes the next candidate for Acquire.
//
// The pool performs no identity checks: the caller must release each
// acquired item exactly once, and only items acquired from this pool.
// An item released to a disposed pool is destroyed instead of retained.
func (p *BoundedPool[T]) Release(item T) {
	if p.onRelease != nil {
		p.onRelease(item)
	}
	if p.disposed {
		p.destroy(item)
		return
	}
	p.available = append(p.available, item)
}

// Trim destroys idle items until at most targetIdle remain, invoking the
// destroy hook for each. Checked-out items are never touched. The oldest
// idle items are destroyed first, keeping the most recently released ones
// available for reuse.
func (p *BoundedPool[T]) Trim(targetIdle int) {
	if targetIdle < 0 {
		targetIdle = 0
	}
	excess := len(p.available) - targetIdle
	if excess <= 0 {
		return
	}

	for _, item := range p.available[:excess] {
		p.destroy(item)
	}

	var zero T
	n := copy(p.available, p.available[excess:])
	for i := n; i < len(p.available); i++ {
		p.available[i] = zero
	}
	p.available = p.available[:n]
}

// Dispose tears the pool down: every idle item is destroyed and the live
// count is reset. Items checked out at the time of disposal are not
// destroyed; if the caller still releases them afterwards they are destroyed
// on release rather than retained. Acquiring from a disposed pool fails with
// a disposed error.
func (p *BoundedPool[T]) Dispose() {
	if p.disposed {
		return
	}
	var zero T
	for i, item := range p.available {
		if p.onDestroy != nil {
			p.onDestroy(item)
		}
		p.stats.destroyed++
		p.available[i] = zero
	}
	p.available = p.available[:0]
	p.live = 0
	p.disposed = true
}

// Prewarm creates up to n idle items through the factory without running the
// acquire hook, stopping early at the pool bound. It returns the number of
// items actually created. Prewarming avoids first-use factory latency after
// startup or a Trim.
func (p *BoundedPool[T]) Prewarm(n int) int {
	if p.disposed {
		return 0
	}
	created := 0
	for created < n {
		if p.maxSize > 0 && p.live >= p.maxSize {
			break
		}
		p.available = append(p.available, p.factory())
		p.live++
		p.stats.created++
		created++
	}
	return created
}

// Len returns the current number of idle items.
func (p *BoundedPool[T]) Len() int {
	return len(p.available)
}

// Live returns the number of items created and not yet destroyed, whether
// idle or checked out.
func (p *BoundedPool[T]) Live() int {
	return p.live
}

// Cap returns the configured bound on live items, or 0 when unbounded.
func (p *BoundedPool[T]) Cap() int {
	return p.maxSize
}

// Stats returns a snapshot of lifetime counters and current gauges.
func (p *BoundedPool[T]) Stats() Stats {
	return Stats{
		Created:   p.stats.created,
		Reused:    p.stats.reused,
		Destroyed: p.stats.destroyed,
		Exhausted: p.stats.exhausted,
		Idle:      len(p.available),
		Live:      p.live,
	}
}

// destroy runs the destroy hook and adjusts accounting for one item.
func (p *BoundedPool[T]) destroy(item T) {
	if p.onDestroy != nil {
		p.onDestroy(item)
	}
	if p.live > 0 {
		p.live--
	}
	p.stats.destroyed++
}
