package threading

import (
	"context"
	"sync"

	"go.uber.org/zap"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/eventloop"
	"github.com/wippyai/qtbind/guard"
	"github.com/wippyai/qtbind/locking"
)

// FatalHandler receives unrecoverable queueing failures. It is expected not
// to return.
type FatalHandler func(err error)

var (
	fatalMu      sync.RWMutex
	fatalHandler FatalHandler = func(err error) { panic(err) }
)

// SetFatalHandler replaces the handler invoked when posting to an owning
// loop fails and returns the previous one.
func SetFatalHandler(h FatalHandler) FatalHandler {
	fatalMu.Lock()
	defer fatalMu.Unlock()
	prev := fatalHandler
	fatalHandler = h
	return prev
}

// Fatal reports err through the installed FatalHandler.
func Fatal(err error) {
	fatalMu.RLock()
	h := fatalHandler
	fatalMu.RUnlock()
	h(err)
}

// Handle lets any goroutine schedule work on an object's owning loop. All
// clones share the object's guard, lock and loop.
type Handle[T any] struct {
	guard  *guard.Pointer[T]
	lock   locking.Locker
	poster eventloop.Poster
	name   string
}

// New creates a handle for the object guarded by g. Work runs on poster
// under lock.
func New[T any](name string, g *guard.Pointer[T], lock locking.Locker, poster eventloop.Poster) *Handle[T] {
	if lock == nil {
		lock = locking.None{}
	}
	return &Handle[T]{
		guard:  g,
		lock:   lock,
		poster: poster,
		name:   name,
	}
}

// Clone returns another handle to the same object.
func (h *Handle[T]) Clone() *Handle[T] {
	c := *h
	return &c
}

// IsDestroyed reports whether the object has been destroyed.
func (h *Handle[T]) IsDestroyed() bool {
	return h.guard.State() == guard.Invalidated
}

// Queue schedules fn to run on the owning loop with the object locked. It
// fails with ErrObjectDestroyed once the object is destroyed. Work queued
// from one goroutine runs in the order it was queued. A failure to post is
// not recoverable and is passed to the FatalHandler.
//
// If the object is destroyed after fn is queued but before it runs, fn is
// discarded. Destruction must itself run on the owning loop: the liveness
// check in the task then cannot race with it, so fn never observes a
// half-destroyed object.
func (h *Handle[T]) Queue(fn func(ctx context.Context, obj *T)) error {
	var postErr error
	live := h.guard.Read(func(*T) {
		postErr = h.poster.Post(h.task(fn))
	})
	if !live {
		return qerrors.ObjectDestroyed(h.name)
	}
	if postErr != nil {
		err := qerrors.PostFailed(h.name, postErr)
		Logger().Error("failed to post queued work",
			zap.String("object", h.name),
			zap.Error(postErr))
		Fatal(err)
		return err
	}
	return nil
}

func (h *Handle[T]) task(fn func(ctx context.Context, obj *T)) eventloop.Task {
	return func(ctx context.Context) {
		obj, ok := h.guard.Get()
		if !ok {
			Logger().Warn("discarding queued work for destroyed object",
				zap.String("object", h.name))
			return
		}
		ctx, unlock := h.lock.Lock(ctx)
		defer unlock()
		fn(ctx, obj)
	}
}
