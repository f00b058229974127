package qobject

import (
	"sync"
)

// Property is the storage of one host property. Setting a different value
// requests the property's change signal.
type Property[T comparable] struct {
	obj    *Object
	notify string
	value  T
	mu     sync.RWMutex
}

// NewProperty creates a property of o. An empty notify name makes the
// property constant: it never notifies.
func NewProperty[T comparable](o *Object, notify string, initial T) *Property[T] {
	return &Property[T]{obj: o, notify: notify, value: initial}
}

func (p *Property[T]) Get() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Ptr returns the address of the stored value. Reads through it race with
// Set unless the object's lock is held.
func (p *Property[T]) Ptr() *T {
	return &p.value
}

// Set stores v and, once the object is initialized, requests the change
// signal. Setting the current value does nothing and returns false.
func (p *Property[T]) Set(v T) bool {
	p.mu.Lock()
	if p.value == v {
		p.mu.Unlock()
		return false
	}
	p.value = v
	p.mu.Unlock()

	if p.notify != "" && p.obj.Initialized() {
		p.obj.RequestNotify(p.notify)
	}
	return true
}

// Notify returns the change signal name, empty for constant properties.
func (p *Property[T]) Notify() string {
	return p.notify
}
