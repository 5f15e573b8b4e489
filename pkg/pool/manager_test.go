package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repool/repool/pkg/errors"
	"github.com/repool/repool/pkg/pool"
	"github.com/repool/repool/pkg/testutil"
)

func TestManagerRegisterAndGet(t *testing.T) {
	mgr := pool.NewManager(testutil.TestLogger(t))

	p := pool.New(func() *item { return &item{} })
	require.NoError(t, mgr.Register("items", p))
	assert.Equal(t, 1, mgr.Len())

	got, ok := mgr.Get("items")
	require.True(t, ok)
	assert.Equal(t, pool.Disposable(p), got)

	_, ok = mgr.Get("missing")
	assert.False(t, ok)
}

func TestManagerRejectsDuplicateNames(t *testing.T) {
	mgr := pool.NewManager(nil)

	require.NoError(t, mgr.Register("a", pool.New(func() *item { return &item{} })))
	err := mgr.Register("a", pool.New(func() *item { return &item{} }))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestManagerCloseDisposesInReverseOrder(t *testing.T) {
	var order []string
	newPool := func(name string) *pool.BoundedPool[*item] {
		p := pool.New(func() *item { return &item{} },
			pool.WithOnDestroy(func(*item) { order = append(order, name) }))
		p.Prewarm(1)
		return p
	}

	mgr := pool.NewManager(nil)
	require.NoError(t, mgr.Register("first", newPool("first")))
	require.NoError(t, mgr.Register("second", newPool("second")))
	require.NoError(t, mgr.Register("third", newPool("third")))

	mgr.Close()
	assert.Equal(t, []string{"third", "second", "first"}, order)
	assert.Equal(t, 0, mgr.Len())

	// A closed manager accepts new registrations.
	require.NoError(t, mgr.Register("first", newPool("again")))
}
