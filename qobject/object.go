package qobject

import (
	"context"
	"sync"

	"go.uber.org/zap"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/eventloop"
	"github.com/wippyai/qtbind/guard"
	"github.com/wippyai/qtbind/handle"
	"github.com/wippyai/qtbind/locking"
	"github.com/wippyai/qtbind/signal"
	"github.com/wippyai/qtbind/threading"
)

// Phase is the lifecycle phase of an object.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseBase
	PhaseHost
	PhaseInitialized
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseBase:
		return "base"
	case PhaseHost:
		return "host"
	case PhaseInitialized:
		return "initialized"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Teardown is implemented by every signal an object owns.
type Teardown interface {
	Name() string
	DisconnectAll() int
}

var notifyGlue = signal.RegisterGlue[signal.Void]("qobject::notify")

// Object is the native side of a bridged object: its loop affinity, its
// lock, its signals and its lifecycle.
type Object struct {
	loop       *eventloop.Loop
	lock       locking.Locker
	signals    map[string]Teardown
	notify     map[string]*signal.Signal[signal.Void]
	hooks      []func()
	invalidate []func() bool
	name       string
	host       handle.Handle
	mu         sync.Mutex
	phase      Phase
}

// New creates an object with affinity to loop, serialized by a recursive
// mutex.
func New(name string, loop *eventloop.Loop) *Object {
	return &Object{
		name:    name,
		loop:    loop,
		lock:    locking.NewRecursiveMutex(),
		signals: make(map[string]Teardown),
		notify:  make(map[string]*signal.Signal[signal.Void]),
	}
}

// WithLocker replaces the object's lock, for example with locking.None.
func (o *Object) WithLocker(l locking.Locker) *Object {
	o.lock = l
	return o
}

func (o *Object) Name() string {
	return o.name
}

func (o *Object) Loop() *eventloop.Loop {
	return o.loop
}

func (o *Object) Locker() locking.Locker {
	return o.lock
}

// Phase returns the current lifecycle phase.
func (o *Object) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Initialized reports whether construction completed.
func (o *Object) Initialized() bool {
	return o.Phase() == PhaseInitialized
}

// Destroyed reports whether Destroy ran.
func (o *Object) Destroyed() bool {
	return o.Phase() == PhaseDestroyed
}

// MarkInitialized records that the initialize hook finished.
func (o *Object) MarkInitialized() {
	o.setPhase(PhaseInitialized)
}

func (o *Object) setPhase(p Phase) {
	o.mu.Lock()
	if o.phase != PhaseDestroyed {
		o.phase = p
	}
	o.mu.Unlock()
}

// Host returns the handle of the host companion, 0 before construction.
func (o *Object) Host() handle.Handle {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.host
}

// AddSignal registers a signal so it is torn down with the object.
func (o *Object) AddSignal(s Teardown) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.signals[s.Name()] = s
}

// NotifySignal returns the change signal with the given name, creating it
// on first use.
func (o *Object) NotifySignal(name string) *signal.Signal[signal.Void] {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s, ok := o.notify[name]; ok {
		return s
	}
	s := signal.New(name, notifyGlue, o.loop, o.lock)
	o.notify[name] = s
	o.signals[name] = s
	return s
}

// RequestNotify schedules emission of a change signal on the object's
// loop, after the caller's lock is released. A failure to post is fatal.
func (o *Object) RequestNotify(name string) {
	if o.Destroyed() {
		return
	}
	EmitQueued(o, o.NotifySignal(name), signal.Void{})
}

// EmitQueued emits s with args from o's loop. Nothing is emitted once o is
// destroyed. A failure to post is fatal.
func EmitQueued[A any](o *Object, s *signal.Signal[A], args A) {
	err := o.loop.Post(func(ctx context.Context) {
		if o.Destroyed() {
			return
		}
		if err := s.Emit(ctx, args); err != nil {
			Logger().Error("signal emission failed",
				zap.String("object", o.name),
				zap.String("signal", s.Name()),
				zap.Error(err))
		}
	})
	if err != nil {
		threading.Fatal(qerrors.PostFailed(o.name, err))
	}
}

// OnDestroy registers fn to run during Destroy. Hooks run in reverse order
// of registration.
func (o *Object) OnDestroy(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hooks = append(o.hooks, fn)
}

// Destroy invalidates every cross-thread handle, runs destroy hooks, tears
// down connections and releases the host companion. It must run on the
// object's loop and is idempotent.
func (o *Object) Destroy() bool {
	o.mu.Lock()
	if o.phase == PhaseDestroyed {
		o.mu.Unlock()
		return false
	}
	o.phase = PhaseDestroyed
	invalidate := o.invalidate
	hooks := o.hooks
	signals := o.signals
	host := o.host
	o.invalidate = nil
	o.hooks = nil
	o.signals = make(map[string]Teardown)
	o.notify = make(map[string]*signal.Signal[signal.Void])
	o.host = 0
	o.mu.Unlock()

	for _, inv := range invalidate {
		inv()
	}
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
	connections := 0
	for _, s := range signals {
		connections += s.DisconnectAll()
	}
	if host != 0 {
		handle.Global().Remove(host)
	}

	Logger().Debug("object destroyed",
		zap.String("object", o.name),
		zap.Int("connections", connections))
	return true
}

// Threading returns a cross-thread handle to host. Every handle created for
// the object is invalidated when it is destroyed.
func Threading[T any](o *Object, host *T) (*threading.Handle[T], error) {
	g := guard.New(host)

	o.mu.Lock()
	if o.phase == PhaseDestroyed {
		o.mu.Unlock()
		return nil, qerrors.ObjectDestroyed(o.name)
	}
	o.invalidate = append(o.invalidate, g.Invalidate)
	o.mu.Unlock()

	return threading.New(o.name, g, o.lock, o.loop), nil
}
