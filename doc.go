// Package repool provides bounded, dynamically growable object pools with
// lifecycle callbacks for Go applications that recycle expensive objects:
// connections, buffers, decoded assets, simulation entities.
//
// Where sync.Pool is an opaque cache the runtime may drain at any time,
// repool pools own their items explicitly: they enforce an optional hard cap
// on live instances, fail fast with a typed error when the cap is hit, and
// support explicit shrinking and teardown with a destroy callback per item.
//
// # Key Packages
//
//	pkg/pool     - Core pooling: BoundedPool, TrackedPool, SyncPool, Janitor, Manager
//	pkg/config   - Pool configuration with YAML loading and validation
//	pkg/metrics  - Prometheus instrumentation for pool activity
//	pkg/logger   - Structured logging built on zap
//	pkg/errors   - Structured error types with pool-specific categories
//
// # Quick Start
//
//	import (
//	    "github.com/repool/repool/pkg/errors"
//	    "github.com/repool/repool/pkg/pool"
//	)
//
//	p := pool.New(
//	    func() *Decoder { return NewDecoder() },
//	    pool.WithMaxSize[*Decoder](32),
//	    pool.WithOnRelease(func(d *Decoder) { d.Reset() }),
//	    pool.WithOnDestroy(func(d *Decoder) { d.Close() }),
//	)
//
//	d, err := p.Acquire()
//	if errors.IsExhausted(err) {
//	    // bounded and full; shed load or raise capacity
//	}
//	defer p.Release(d)
//
// A BoundedPool assumes a single owning goroutine, matching the common game
// loop and event loop usage it grew out of. Wrap it in a SyncPool for shared
// access, or use a TrackedPool when double-release protection is worth one
// map operation per acquire and release.
package repool
