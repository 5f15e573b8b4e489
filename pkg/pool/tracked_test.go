package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repool/repool/pkg/errors"
	"github.com/repool/repool/pkg/pool"
)

func TestTrackedPoolNormalFlow(t *testing.T) {
	factoryCalls := 0
	p := pool.NewTracked(func() *item {
		factoryCalls++
		return &item{}
	}, pool.WithMaxSize[*item](2))

	a, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 1, p.InFlight())

	require.NoError(t, p.Release(a))
	assert.Equal(t, 0, p.InFlight())
	assert.Equal(t, 1, p.Len())

	b, err := p.Acquire()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, factoryCalls)
	require.NoError(t, p.Release(b))
}

func TestTrackedPoolRejectsDoubleRelease(t *testing.T) {
	p := pool.NewTracked(func() *item { return &item{} })

	a, err := p.Acquire()
	require.NoError(t, err)

	require.NoError(t, p.Release(a))
	err = p.Release(a)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRelease(err))
	assert.Equal(t, 1, p.Len(), "double release must not duplicate the idle entry")
}

func TestTrackedPoolRejectsForeignItem(t *testing.T) {
	p := pool.NewTracked(func() *item { return &item{} })

	_, err := p.Acquire()
	require.NoError(t, err)

	foreign := &item{}
	err = p.Release(foreign)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRelease(err))
	assert.Equal(t, 0, p.Len())
}

func TestTrackedPoolExhaustion(t *testing.T) {
	p := pool.NewTracked(func() *item { return &item{} }, pool.WithMaxSize[*item](1))

	_, err := p.Acquire()
	require.NoError(t, err)

	_, err = p.Acquire()
	require.Error(t, err)
	assert.True(t, errors.IsExhausted(err))
	assert.Equal(t, 1, p.InFlight(), "failed acquire must not be tracked")
}

func TestTrackedPoolDisposeForgetsInFlight(t *testing.T) {
	destroyed := 0
	p := pool.NewTracked(func() *item { return &item{} },
		pool.WithOnDestroy(func(*item) { destroyed++ }))

	out, err := p.Acquire()
	require.NoError(t, err)
	p.Prewarm(2)

	p.Dispose()
	assert.Equal(t, 2, destroyed)
	assert.Equal(t, 0, p.InFlight())

	// The straggler's identity was forgotten at disposal.
	err = p.Release(out)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRelease(err))
}

func TestTrackedPoolTrim(t *testing.T) {
	destroyed := 0
	p := pool.NewTracked(func() *item { return &item{} },
		pool.WithOnDestroy(func(*item) { destroyed++ }))
	p.Prewarm(4)

	p.Trim(1)
	assert.Equal(t, 3, destroyed)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 1, p.Live())
}
