package threading

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/eventloop"
	"github.com/wippyai/qtbind/guard"
	"github.com/wippyai/qtbind/locking"
)

type counter struct {
	values []int
	n      int
}

func newHandle(loop *eventloop.Loop) (*Handle[counter], *guard.Pointer[counter], *locking.RecursiveMutex) {
	g := guard.New(&counter{})
	mu := locking.NewRecursiveMutex()
	return New("Counter", g, mu, loop), g, mu
}

func TestQueue_RunsOnLoopUnderLock(t *testing.T) {
	loop := eventloop.New()
	h, _, mu := newHandle(loop)

	var onLoop, held bool
	require.NoError(t, h.Queue(func(ctx context.Context, c *counter) {
		onLoop = loop.OnLoop(ctx)
		held = mu.Held(ctx)
		c.n++
	}))

	assert.Equal(t, 1, loop.Drain(context.Background()))
	assert.True(t, onLoop)
	assert.True(t, held)
	assert.Equal(t, 0, mu.Depth())
}

func TestQueue_AfterDestroy(t *testing.T) {
	loop := eventloop.New()
	h, g, _ := newHandle(loop)
	clone := h.Clone()

	g.Invalidate()
	assert.True(t, clone.IsDestroyed())

	called := false
	err := clone.Queue(func(context.Context, *counter) { called = true })
	require.Error(t, err)
	assert.True(t, errors.Is(err, qerrors.ErrObjectDestroyed))

	loop.Drain(context.Background())
	assert.False(t, called)
}

func TestQueue_DestroyedBeforeRun(t *testing.T) {
	loop := eventloop.New()
	h, g, _ := newHandle(loop)

	called := false
	require.NoError(t, h.Queue(func(context.Context, *counter) { called = true }))
	g.Invalidate()

	loop.Drain(context.Background())
	assert.False(t, called, "work queued before destruction must be discarded")
}

func TestQueue_DestroyOnLoopOrdersWithWork(t *testing.T) {
	loop := eventloop.New()
	h, g, _ := newHandle(loop)

	var ran []int
	require.NoError(t, h.Queue(func(_ context.Context, c *counter) { ran = append(ran, 1) }))
	require.NoError(t, loop.Post(func(context.Context) { g.Invalidate() }))
	require.NoError(t, h.Queue(func(_ context.Context, c *counter) { ran = append(ran, 2) }))

	loop.Drain(context.Background())
	assert.Equal(t, []int{1}, ran, "work behind destruction on the loop never runs")
}

func TestQueue_FIFOPerGoroutine(t *testing.T) {
	loop := eventloop.New()
	h, _, _ := newHandle(loop)
	obj, _ := h.guard.Get()

	const producers, perProducer = 4, 100
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int, h *Handle[counter]) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				v := p*perProducer + i
				assert.NoError(t, h.Queue(func(_ context.Context, c *counter) {
					c.values = append(c.values, v)
				}))
			}
		}(p, h.Clone())
	}
	wg.Wait()

	loop.Drain(context.Background())
	require.Len(t, obj.values, producers*perProducer)

	last := make(map[int]int)
	for _, v := range obj.values {
		p := v / perProducer
		if prev, ok := last[p]; ok {
			assert.Less(t, prev, v, "producer %d out of order", p)
		}
		last[p] = v
	}
}

func TestQueue_PostFailureIsFatal(t *testing.T) {
	loop := eventloop.New()
	h, _, _ := newHandle(loop)
	loop.Stop()

	var fatal error
	prev := SetFatalHandler(func(err error) { fatal = err })
	defer SetFatalHandler(prev)

	err := h.Queue(func(context.Context, *counter) {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, qerrors.ErrPostFailed))
	assert.True(t, errors.Is(err, qerrors.ErrLoopStopped))
	assert.Equal(t, err, fatal)
}

func TestQueue_DefaultFatalPanics(t *testing.T) {
	loop := eventloop.New()
	h, _, _ := newHandle(loop)
	loop.Stop()

	assert.Panics(t, func() {
		_ = h.Queue(func(context.Context, *counter) {})
	})
}

func TestQueue_NestedQueueReenters(t *testing.T) {
	loop := eventloop.New()
	h, _, mu := newHandle(loop)

	var depths []int
	require.NoError(t, h.Queue(func(ctx context.Context, c *counter) {
		depths = append(depths, mu.Depth())
		ctx2, unlock := mu.Lock(ctx)
		depths = append(depths, mu.Depth())
		unlock()
		_ = ctx2
		assert.NoError(t, h.Queue(func(ctx context.Context, c *counter) {
			depths = append(depths, mu.Depth())
		}))
	}))

	loop.Drain(context.Background())
	assert.Equal(t, []int{1, 2, 1}, depths)
}
