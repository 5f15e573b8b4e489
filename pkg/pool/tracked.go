package pool

import (
	"github.com/repool/repool/pkg/errors"
)

// TrackedPool wraps a BoundedPool with a registry of checked-out item
// identities. Where the plain pool treats double-release and foreign-release
// as undefined behavior, a TrackedPool rejects them with an invalid-release
// error before the idle set can be corrupted.
//
// The type parameter is constrained to comparable so items can key the
// registry directly; pointer item types satisfy this naturally. The tracking
// costs one map operation per Acquire and Release.
//
// Like BoundedPool, a TrackedPool assumes a single logical owner.
type TrackedPool[T comparable] struct {
	inner    *BoundedPool[T]
	inFlight map[T]struct{}
}

// NewTracked creates a TrackedPool with the same factory and options as New.
func NewTracked[T comparable](factory func() T, opts ...Option[T]) *TrackedPool[T] {
	return &TrackedPool[T]{
		inner:    New(factory, opts...),
		inFlight: make(map[T]struct{}),
	}
}

// Acquire returns an item for exclusive use and records it as checked out.
func (p *TrackedPool[T]) Acquire() (T, error) {
	item, err := p.inner.Acquire()
	if err != nil {
		return item, err
	}
	p.inFlight[item] = struct{}{}
	return item, nil
}

// Release returns a checked-out item to the idle set. It fails with an
// invalid-release error when the item is not currently checked out, which
// covers both double-release and items foreign to this pool.
func (p *TrackedPool[T]) Release(item T) error {
	if _, ok := p.inFlight[item]; !ok {
		return errors.New(errors.ErrorTypeInvalidRelease, "item is not checked out from this pool")
	}
	delete(p.inFlight, item)
	p.inner.Release(item)
	return nil
}

// Trim destroys idle items until at most targetIdle remain. Checked-out
// items are unaffected.
func (p *TrackedPool[T]) Trim(targetIdle int) {
	p.inner.Trim(targetIdle)
}

// Dispose tears down the idle set. Identities of still-checked-out items are
// forgotten; releasing one afterwards reports an invalid release and the
// item is not retained.
func (p *TrackedPool[T]) Dispose() {
	p.inner.Dispose()
	p.inFlight = make(map[T]struct{})
}

// Prewarm creates up to n idle items, stopping at the pool bound, and
// returns the number created.
func (p *TrackedPool[T]) Prewarm(n int) int {
	return p.inner.Prewarm(n)
}

// InFlight returns the number of items currently checked out.
func (p *TrackedPool[T]) InFlight() int {
	return len(p.inFlight)
}

// Len returns the current number of idle items.
func (p *TrackedPool[T]) Len() int {
	return p.inner.Len()
}

// Live returns the number of items created and not yet destroyed.
func (p *TrackedPool[T]) Live() int {
	return p.inner.Live()
}

// Cap returns the configured bound on live items, or 0 when unbounded.
func (p *TrackedPool[T]) Cap() int {
	return p.inner.Cap()
}

// Stats returns a snapshot of lifetime counters and current gauges.
func (p *TrackedPool[T]) Stats() Stats {
	return p.inner.Stats()
}
