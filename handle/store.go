package handle

import (
	"errors"
	"sync"
)

var (
	ErrFull              = errors.New("handle store full")
	ErrOutstandingBorrow = errors.New("cannot drop handle with outstanding borrows")
)

// Store is slot storage for host values with borrow tracking. Released
// slots are reused under a new generation.
type Store struct {
	entries  []entry
	freeList []int
	mu       sync.RWMutex
}

type entry struct {
	value       any
	borrowCount uint32
	kind        Kind
	gen         uint8
	valid       bool
}

func NewStore() *Store {
	return &Store{
		entries:  make([]entry, 0, 64),
		freeList: make([]int, 0, 16),
	}
}

// Create stores a value and returns its handle.
func (s *Store) Create(kind Kind, value any) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.freeList); n > 0 {
		slot := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		e := &s.entries[slot]
		*e = entry{kind: kind, value: value, gen: e.gen, valid: true}
		return makeHandle(slot, e.gen), nil
	}

	if len(s.entries) >= MaxSlots {
		return 0, ErrFull
	}
	s.entries = append(s.entries, entry{kind: kind, value: value, valid: true})
	return makeHandle(len(s.entries)-1, 0), nil
}

// lookup must be called with s.mu held.
func (s *Store) lookup(h Handle) *entry {
	slot := h.slot()
	if slot < 0 || slot >= len(s.entries) {
		return nil
	}
	e := &s.entries[slot]
	if !e.valid || e.gen != h.generation() {
		return nil
	}
	return e
}

// Get retrieves a value by handle.
func (s *Store) Get(h Handle) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.lookup(h)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// Kind returns the kind a handle was created with.
func (s *Store) Kind(h Handle) (Kind, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.lookup(h)
	if e == nil {
		return KindAny, false
	}
	return e.kind, true
}

// Drop releases a handle and returns its value. ok is false for unknown or
// stale handles. Dropping a borrowed handle fails with ErrOutstandingBorrow
// and leaves it valid.
func (s *Store) Drop(h Handle) (value any, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(h)
	if e == nil {
		return nil, false, nil
	}
	if e.borrowCount > 0 {
		return nil, false, ErrOutstandingBorrow
	}

	value = e.value
	*e = entry{gen: e.gen + 1}
	s.freeList = append(s.freeList, h.slot())
	return value, true, nil
}

// Borrow marks the handle as lent for the duration of a call.
func (s *Store) Borrow(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(h)
	if e == nil {
		return false
	}
	e.borrowCount++
	return true
}

// ReturnBorrow ends one borrow of the handle and reports how many remain.
func (s *Store) ReturnBorrow(h Handle) (remaining uint32, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(h)
	if e == nil || e.borrowCount == 0 {
		return 0, false
	}
	e.borrowCount--
	return e.borrowCount, true
}

// Len returns the number of live handles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries) - len(s.freeList)
}
