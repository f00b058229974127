package guard

import (
	"sync"
)

// State is the lifecycle state of a guarded pointer.
type State uint8

const (
	// Live means the referent may be read under the shared lock.
	Live State = iota
	// Invalidated is terminal. The referent is gone.
	Invalidated
)

func (s State) String() string {
	if s == Live {
		return "live"
	}
	return "invalidated"
}

// Pointer is a shared, invalidatable reference to an object owned
// elsewhere. Readers hold the shared lock; invalidation takes the exclusive
// lock exactly once.
type Pointer[T any] struct {
	p     *T
	mu    sync.RWMutex
	state State
}

// New guards p. A nil p starts Invalidated.
func New[T any](p *T) *Pointer[T] {
	g := &Pointer[T]{p: p}
	if p == nil {
		g.state = Invalidated
	}
	return g
}

// Read calls fn with the referent under the shared lock. It returns false
// without calling fn once the pointer is invalidated. fn must not
// invalidate the same pointer.
func (g *Pointer[T]) Read(fn func(*T)) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.state != Live {
		return false
	}
	fn(g.p)
	return true
}

// Get returns the referent if still live. The result is only safe to use
// on the goroutine that owns invalidation.
func (g *Pointer[T]) Get() (*T, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.state != Live {
		return nil, false
	}
	return g.p, true
}

// Invalidate transitions Live to Invalidated. It waits for in-flight
// readers and reports whether this call performed the transition.
func (g *Pointer[T]) Invalidate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Invalidated {
		return false
	}
	g.state = Invalidated
	g.p = nil
	return true
}

func (g *Pointer[T]) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}
