package handle

import (
	"sync"

	"go.uber.org/zap"
)

// Table wraps a Store with lifecycle observers and Dropper support.
type Table struct {
	store     *Store
	observers []Observer
	pending   map[Handle]struct{}
	obsMu     sync.RWMutex
	pendingMu sync.Mutex
}

func NewTable() *Table {
	return &Table{store: NewStore(), pending: make(map[Handle]struct{})}
}

var (
	globalOnce  sync.Once
	globalTable *Table
)

// Global returns the process-wide table used by generated glue, boxed
// signal handlers and owned values. Its lifecycle events are logged at
// debug level.
func Global() *Table {
	globalOnce.Do(func() {
		globalTable = NewTable()
		globalTable.Subscribe(logObserver{})
	})
	return globalTable
}

// Insert adds a value and returns its handle, or 0 when the table is full.
func (t *Table) Insert(kind Kind, value any) Handle {
	h, err := t.store.Create(kind, value)
	if err != nil {
		Logger().Error("handle insert failed", zap.Stringer("kind", kind), zap.Error(err))
		return 0
	}
	t.notify(Event{Type: EventCreated, Handle: h, Kind: kind, Value: value})
	return h
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	return t.store.Get(h)
}

// GetKind retrieves a value only if it was inserted with the given kind.
func (t *Table) GetKind(h Handle, kind Kind) (any, bool) {
	actual, ok := t.store.Kind(h)
	if !ok || actual != kind {
		return nil, false
	}
	return t.store.Get(h)
}

// Lookup retrieves a value of static type T.
func Lookup[T any](t *Table, h Handle) (T, bool) {
	v, ok := t.store.Get(h)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Remove releases a handle. Droppers are dropped exactly once. Removing an
// unknown or already released handle is a no-op. A borrowed handle is
// released when its last borrow is returned; until then Remove reports
// false and new borrows are refused.
func (t *Table) Remove(h Handle) (any, bool) {
	t.pendingMu.Lock()
	kind, _ := t.store.Kind(h)
	value, ok, err := t.store.Drop(h)
	if err != nil {
		t.pending[h] = struct{}{}
	}
	t.pendingMu.Unlock()
	if err != nil {
		Logger().Debug("handle removal deferred",
			zap.Uint32("handle", uint32(h)),
			zap.Stringer("kind", kind),
			zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventDropped, Handle: h, Kind: kind, Value: value})
	return value, true
}

// Borrow lends a handle for the duration of a call. A borrowed handle
// cannot be released until the borrow is returned.
func (t *Table) Borrow(h Handle) bool {
	t.pendingMu.Lock()
	_, released := t.pending[h]
	ok := !released && t.store.Borrow(h)
	t.pendingMu.Unlock()
	if !ok {
		return false
	}
	t.notify(Event{Type: EventBorrowed, Handle: h})
	return true
}

// ReturnBorrow ends one borrow and completes a deferred removal once no
// borrows remain.
func (t *Table) ReturnBorrow(h Handle) bool {
	t.pendingMu.Lock()
	remaining, ok := t.store.ReturnBorrow(h)
	_, released := t.pending[h]
	released = ok && released && remaining == 0
	if released {
		delete(t.pending, h)
	}
	t.pendingMu.Unlock()
	if !ok {
		return false
	}

	t.notify(Event{Type: EventBorrowReturned, Handle: h})
	if released {
		t.Remove(h)
	}
	return true
}

// Subscribe adds an observer of lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	return t.store.Len()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}

// logObserver writes lifecycle events to the package logger.
type logObserver struct{}

func (logObserver) OnHandleEvent(e Event) {
	if ce := Logger().Check(zap.DebugLevel, "handle "+e.Type.String()); ce != nil {
		ce.Write(zap.Uint32("handle", uint32(e.Handle)), zap.Stringer("kind", e.Kind))
	}
}
