// Package metrics provides Prometheus instrumentation for repool. It
// defines pool-shaped metric vectors labeled by pool name and a Collector
// that publishes a pool's stats snapshots into them.
//
// # Basic Usage
//
//	p := pool.NewSync(newConn, pool.WithMaxSize[*Conn](64))
//	collector := metrics.NewCollector("conns", p.Cap())
//
//	// On a timer or after each batch:
//	collector.Observe(p.Stats())
//
// # Metric Types
//
// Counter: lifetime totals (items created, reused, destroyed, acquisitions
// rejected at the cap)
// Gauge: current values (idle items, live items, configured capacity)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/repool/repool/pkg/pool"
)

var (
	// ItemsCreated tracks the total number of items produced by pool factories.
	// Labels: pool (pool name)
	ItemsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_items_created_total",
			Help: "Total number of items created by the pool factory",
		},
		[]string{"pool"},
	)

	// ItemsReused tracks acquisitions served from the idle set.
	ItemsReused = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_items_reused_total",
			Help: "Total number of acquisitions served by reusing an idle item",
		},
		[]string{"pool"},
	)

	// ItemsDestroyed tracks items destroyed by trim or disposal.
	ItemsDestroyed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_items_destroyed_total",
			Help: "Total number of items destroyed by trim or dispose",
		},
		[]string{"pool"},
	)

	// AcquireExhausted tracks acquisitions rejected because the pool was
	// bounded and full.
	AcquireExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_acquire_exhausted_total",
			Help: "Total number of acquisitions rejected at the pool bound",
		},
		[]string{"pool"},
	)

	// IdleItems tracks the current number of idle items per pool.
	IdleItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repool_idle_items",
			Help: "Current number of idle items in the pool",
		},
		[]string{"pool"},
	)

	// LiveItems tracks the current number of live items per pool.
	LiveItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repool_live_items",
			Help: "Current number of live items (idle plus checked out)",
		},
		[]string{"pool"},
	)

	// PoolCapacity reports the configured bound per pool (0 = unbounded).
	PoolCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repool_capacity",
			Help: "Configured bound on live items, 0 when unbounded",
		},
		[]string{"pool"},
	)
)

// Collector publishes stats snapshots for one named pool. Counters are
// cumulative in the snapshots, so the collector remembers the previous
// snapshot and feeds Prometheus the deltas.
type Collector struct {
	name string
	last pool.Stats
}

// NewCollector creates a collector for the named pool and records its
// configured capacity.
//
// Example:
//
//	collector := metrics.NewCollector("decoder-buffers", p.Cap())
//	collector.Observe(p.Stats())
func NewCollector(name string, capacity int) *Collector {
	PoolCapacity.WithLabelValues(name).Set(float64(capacity))
	return &Collector{name: name}
}

// Observe publishes one stats snapshot. Snapshots must be observed in
// order; a snapshot older than the previous one is ignored.
func (c *Collector) Observe(s pool.Stats) {
	if s.Created < c.last.Created {
		return
	}

	ItemsCreated.WithLabelValues(c.name).Add(float64(s.Created - c.last.Created))
	ItemsReused.WithLabelValues(c.name).Add(float64(s.Reused - c.last.Reused))
	ItemsDestroyed.WithLabelValues(c.name).Add(float64(s.Destroyed - c.last.Destroyed))
	AcquireExhausted.WithLabelValues(c.name).Add(float64(s.Exhausted - c.last.Exhausted))
	IdleItems.WithLabelValues(c.name).Set(float64(s.Idle))
	LiveItems.WithLabelValues(c.name).Set(float64(s.Live))

	c.last = s
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
// The name parameter is for identification in logs or metrics.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Stop returns the elapsed time since the timer was created.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// Name returns the timer's identifier.
func (t *Timer) Name() string {
	return t.name
}
