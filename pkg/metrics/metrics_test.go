package metrics_test

import (
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repool/repool/pkg/metrics"
	"github.com/repool/repool/pkg/pool"
)

type widget struct{}

func TestCollectorObservePublishesDeltas(t *testing.T) {
	p := pool.New(func() *widget { return &widget{} },
		pool.WithMaxSize[*widget](4))

	c := metrics.NewCollector("test_deltas", p.Cap())
	assert.Equal(t, 4.0, promtestutil.ToFloat64(metrics.PoolCapacity.WithLabelValues("test_deltas")))

	a, err := p.Acquire()
	require.NoError(t, err)
	p.Release(a)
	_, err = p.Acquire()
	require.NoError(t, err)

	c.Observe(p.Stats())
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.ItemsCreated.WithLabelValues("test_deltas")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.ItemsReused.WithLabelValues("test_deltas")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.LiveItems.WithLabelValues("test_deltas")))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(metrics.IdleItems.WithLabelValues("test_deltas")))

	// A second observation only adds what happened since the last one.
	b, err := p.Acquire()
	require.NoError(t, err)
	p.Release(b)
	c.Observe(p.Stats())
	assert.Equal(t, 2.0, promtestutil.ToFloat64(metrics.ItemsCreated.WithLabelValues("test_deltas")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.IdleItems.WithLabelValues("test_deltas")))
}

func TestCollectorObserveExhaustionAndDestruction(t *testing.T) {
	p := pool.New(func() *widget { return &widget{} },
		pool.WithMaxSize[*widget](1))
	c := metrics.NewCollector("test_exhaust", p.Cap())

	a, err := p.Acquire()
	require.NoError(t, err)
	_, err = p.Acquire()
	require.Error(t, err)

	p.Release(a)
	p.Trim(0)

	c.Observe(p.Stats())
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.AcquireExhausted.WithLabelValues("test_exhaust")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.ItemsDestroyed.WithLabelValues("test_exhaust")))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(metrics.LiveItems.WithLabelValues("test_exhaust")))
}

func TestCollectorIgnoresStaleSnapshot(t *testing.T) {
	p := pool.New(func() *widget { return &widget{} })
	c := metrics.NewCollector("test_stale", p.Cap())

	_, err := p.Acquire()
	require.NoError(t, err)
	c.Observe(p.Stats())

	// An older snapshot (fewer creations than already observed) is dropped.
	c.Observe(pool.Stats{})
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.ItemsCreated.WithLabelValues("test_stale")))
}

func TestTimer(t *testing.T) {
	timer := metrics.NewTimer("op")
	time.Sleep(10 * time.Millisecond)
	elapsed := timer.Stop()

	assert.Equal(t, "op", timer.Name())
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}
