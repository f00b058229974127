package eventloop

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	qerrors "github.com/wippyai/qtbind/errors"
)

// Task is one unit of work executed on the loop. The context is tagged with
// the loop it runs on.
type Task func(ctx context.Context)

// Poster enqueues tasks for later execution on an owning loop.
type Poster interface {
	Post(Task) error
}

// Loop is a cooperative FIFO event loop owned by a single goroutine.
type Loop struct {
	name     string
	queue    []Task
	wake     chan struct{}
	mu       sync.Mutex
	capacity int
	stopped  bool
}

// New creates an unbounded loop.
func New() *Loop {
	return &Loop{
		name: "loop",
		wake: make(chan struct{}, 1),
	}
}

// WithCapacity bounds the queue. Zero means unbounded.
func (l *Loop) WithCapacity(n int) *Loop {
	l.capacity = n
	return l
}

// WithName sets the name used in logs and errors.
func (l *Loop) WithName(name string) *Loop {
	l.name = name
	return l
}

func (l *Loop) Name() string {
	return l.name
}

// Post appends t to the queue. It never blocks.
func (l *Loop) Post(t Task) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return qerrors.New(qerrors.PhasePost, qerrors.KindLoopStopped).Object(l.name).Build()
	}
	if l.capacity > 0 && len(l.queue) >= l.capacity {
		l.mu.Unlock()
		return qerrors.New(qerrors.PhasePost, qerrors.KindQueueFull).
			Object(l.name).
			Detail("capacity %d reached", l.capacity).
			Build()
	}
	l.queue = append(l.queue, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Len returns the number of pending tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Stop rejects further posts. Run returns once the pending tasks ran.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

// Run executes tasks on the calling goroutine until Stop is called and the
// queue is empty, or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	loopCtx := WithLoop(ctx, l)
	Logger().Debug("event loop started", zap.String("loop", l.name))
	defer Logger().Debug("event loop exited", zap.String("loop", l.name))

	for {
		l.drainOnce(loopCtx)

		l.mu.Lock()
		done := l.stopped && len(l.queue) == 0
		l.mu.Unlock()
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Drain runs pending tasks on the calling goroutine, including tasks they
// post, until the queue is empty. It returns the number of tasks run.
func (l *Loop) Drain(ctx context.Context) int {
	loopCtx := WithLoop(ctx, l)
	total := 0
	for {
		n := l.drainOnce(loopCtx)
		if n == 0 {
			return total
		}
		total += n
	}
}

func (l *Loop) drainOnce(ctx context.Context) int {
	n := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return n
		}
		t := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.run(ctx, t)
		n++
	}
}

func (l *Loop) run(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("task panicked",
				zap.String("loop", l.name),
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"))
		}
	}()
	t(ctx)
}

type loopKey struct{}

// WithLoop tags ctx as executing on l.
func WithLoop(ctx context.Context, l *Loop) context.Context {
	return context.WithValue(ctx, loopKey{}, l)
}

// FromContext returns the loop ctx is executing on, if any.
func FromContext(ctx context.Context) (*Loop, bool) {
	l, ok := ctx.Value(loopKey{}).(*Loop)
	return l, ok && l != nil
}

// OnLoop reports whether ctx is executing on l.
func (l *Loop) OnLoop(ctx context.Context) bool {
	cur, ok := FromContext(ctx)
	return ok && cur == l
}
