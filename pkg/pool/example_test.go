// Package pool provides example usage of the bounded object pool.
package pool_test

import (
	"fmt"

	"github.com/repool/repool/pkg/errors"
	"github.com/repool/repool/pkg/pool"
)

// projectile is a small stand-in for an expensive-to-create object.
type projectile struct {
	active bool
}

// Example demonstrates the basic acquire/release cycle.
func Example() {
	p := pool.New(
		func() *projectile { return &projectile{} },
		pool.WithOnAcquire(func(pr *projectile) { pr.active = true }),
		pool.WithOnRelease(func(pr *projectile) { pr.active = false }),
	)

	pr, err := p.Acquire()
	if err != nil {
		fmt.Println("acquire failed:", err)
		return
	}
	fmt.Printf("active: %v\n", pr.active)

	p.Release(pr)
	fmt.Printf("idle after release: %d\n", p.Len())

	// Output:
	// active: true
	// idle after release: 1
}

// ExampleWithMaxSize shows how a bounded pool reports exhaustion instead of
// growing past its cap.
func ExampleWithMaxSize() {
	p := pool.New(
		func() *projectile { return &projectile{} },
		pool.WithMaxSize[*projectile](2),
	)

	a, _ := p.Acquire()
	b, _ := p.Acquire()
	_, err := p.Acquire()

	fmt.Printf("live: %d\n", p.Live())
	fmt.Printf("exhausted: %v\n", errors.IsExhausted(err))

	p.Release(a)
	p.Release(b)

	// Output:
	// live: 2
	// exhausted: true
}

// ExampleBoundedPool_Trim shows shrinking the idle set after a usage spike.
func ExampleBoundedPool_Trim() {
	destroyed := 0
	p := pool.New(
		func() *projectile { return &projectile{} },
		pool.WithOnDestroy(func(*projectile) { destroyed++ }),
	)
	p.Prewarm(5)

	p.Trim(2)
	fmt.Printf("destroyed: %d, idle: %d\n", destroyed, p.Len())

	// Output:
	// destroyed: 3, idle: 2
}

// ExampleNewTracked demonstrates the hardened pool variant that rejects
// double releases.
func ExampleNewTracked() {
	p := pool.NewTracked(func() *projectile { return &projectile{} })

	pr, _ := p.Acquire()
	fmt.Println("first release:", p.Release(pr))

	err := p.Release(pr)
	fmt.Println("double release rejected:", errors.IsInvalidRelease(err))

	// Output:
	// first release: <nil>
	// double release rejected: true
}

// ExampleNewManager shows explicit pool lifetime ownership instead of a
// global pool singleton.
func ExampleNewManager() {
	mgr := pool.NewManager(nil)

	bullets := pool.New(func() *projectile { return &projectile{} })
	_ = mgr.Register("bullets", bullets)

	bullets.Prewarm(8)
	fmt.Printf("registered pools: %d, idle bullets: %d\n", mgr.Len(), bullets.Len())

	mgr.Close()
	fmt.Printf("idle after close: %d\n", bullets.Len())

	// Output:
	// registered pools: 1, idle bullets: 8
	// idle after close: 0
}
