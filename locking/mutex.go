package locking

import (
	"context"
	"sync"
	"sync/atomic"
)

// Locker serializes access to host logic. Lock returns the context to use
// while the lock is held and the function that releases it.
type Locker interface {
	Lock(ctx context.Context) (context.Context, func())
	Held(ctx context.Context) bool
}

type holderKey struct {
	m *RecursiveMutex
}

// RecursiveMutex is a mutex that the same logical holder may acquire
// repeatedly. The holder is identified by the context returned from Lock;
// passing that context down a call chain makes nested Lock calls re-entrant.
// The context must not be handed to other goroutines while the lock is held.
type RecursiveMutex struct {
	sem   chan struct{}
	mu    sync.Mutex
	owner uint64
	depth int
	next  atomic.Uint64
}

func NewRecursiveMutex() *RecursiveMutex {
	return &RecursiveMutex{sem: make(chan struct{}, 1)}
}

// Lock acquires the mutex, blocking until it is available unless ctx
// already holds it.
func (m *RecursiveMutex) Lock(ctx context.Context) (context.Context, func()) {
	if m.reenter(ctx) {
		return ctx, m.releaser()
	}
	m.sem <- struct{}{}
	return m.acquired(ctx), m.releaser()
}

// TryLock acquires the mutex without blocking.
func (m *RecursiveMutex) TryLock(ctx context.Context) (context.Context, func(), bool) {
	if m.reenter(ctx) {
		return ctx, m.releaser(), true
	}
	select {
	case m.sem <- struct{}{}:
		return m.acquired(ctx), m.releaser(), true
	default:
		return ctx, func() {}, false
	}
}

// Held reports whether ctx carries the current holder of m.
func (m *RecursiveMutex) Held(ctx context.Context) bool {
	id, ok := ctx.Value(holderKey{m}).(uint64)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.depth > 0 && m.owner == id
}

// Depth returns the current recursion depth, zero when unlocked.
func (m *RecursiveMutex) Depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.depth
}

func (m *RecursiveMutex) reenter(ctx context.Context) bool {
	id, ok := ctx.Value(holderKey{m}).(uint64)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.depth == 0 || m.owner != id {
		return false
	}
	m.depth++
	return true
}

func (m *RecursiveMutex) acquired(ctx context.Context) context.Context {
	id := m.next.Add(1)
	m.mu.Lock()
	m.owner = id
	m.depth = 1
	m.mu.Unlock()
	return context.WithValue(ctx, holderKey{m}, id)
}

func (m *RecursiveMutex) releaser() func() {
	var once sync.Once
	return func() {
		once.Do(m.release)
	}
}

func (m *RecursiveMutex) release() {
	m.mu.Lock()
	if m.depth == 0 {
		m.mu.Unlock()
		panic("locking: unlock of unlocked RecursiveMutex")
	}
	m.depth--
	last := m.depth == 0
	if last {
		m.owner = 0
	}
	m.mu.Unlock()
	if last {
		<-m.sem
	}
}

// None is the locker of objects that opted out of locking. It never blocks
// and holds nothing.
type None struct{}

func (None) Lock(ctx context.Context) (context.Context, func()) {
	return ctx, func() {}
}

func (None) Held(context.Context) bool {
	return false
}

var (
	_ Locker = (*RecursiveMutex)(nil)
	_ Locker = None{}
)
