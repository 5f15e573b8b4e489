package pool_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repool/repool/pkg/errors"
	"github.com/repool/repool/pkg/pool"
)

func TestSyncPoolConcurrentAcquireRelease(t *testing.T) {
	const maxSize = 8
	const workers = 16
	const opsPerWorker = 500

	p := pool.NewSync(func() *item { return &item{} },
		pool.WithMaxSize[*item](maxSize))
	defer p.Dispose()

	var completed, exhausted int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < opsPerWorker; i++ {
				it, err := p.Acquire()
				if err != nil {
					if errors.IsExhausted(err) {
						atomic.AddInt64(&exhausted, 1)
						continue
					}
					t.Errorf("unexpected acquire error: %v", err)
					return
				}
				atomic.AddInt64(&completed, 1)
				p.Release(it)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, p.Live(), maxSize, "live count must never exceed the bound")
	assert.Equal(t, int64(workers*opsPerWorker), completed+exhausted)

	s := p.Stats()
	assert.LessOrEqual(t, s.Created, int64(maxSize))
	assert.Equal(t, completed, s.Created+s.Reused)
	assert.Equal(t, exhausted, s.Exhausted)
}

func TestSyncPoolDelegates(t *testing.T) {
	destroyed := 0
	p := pool.NewSync(func() *item { return &item{} },
		pool.WithMaxSize[*item](4),
		pool.WithOnDestroy(func(*item) { destroyed++ }))

	assert.Equal(t, 4, p.Cap())
	created := p.Prewarm(3)
	assert.Equal(t, 3, created)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 3, p.Live())

	p.Trim(1)
	assert.Equal(t, 2, destroyed)
	assert.Equal(t, 1, p.Len())

	it, err := p.Acquire()
	require.NoError(t, err)
	p.Release(it)

	p.Dispose()
	assert.Equal(t, 3, destroyed)
	_, err = p.Acquire()
	assert.True(t, errors.IsDisposed(err))
}
