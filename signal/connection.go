package signal

import (
	"context"
	"sync"

	"go.uber.org/zap"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/eventloop"
	"github.com/wippyai/qtbind/locking"
)

// ConnectionType selects how an emission reaches a handler.
type ConnectionType uint8

const (
	// Auto delivers directly when emitting on the receiver's loop and
	// queues otherwise.
	Auto ConnectionType = iota
	// Direct calls the handler synchronously under the receiver's lock.
	Direct
	// Queued posts the call to the receiver's loop.
	Queued
	// BlockingQueued posts the call and waits for it to finish.
	BlockingQueued
)

func (c ConnectionType) String() string {
	switch c {
	case Auto:
		return "auto"
	case Direct:
		return "direct"
	case Queued:
		return "queued"
	case BlockingQueued:
		return "blocking_queued"
	default:
		return "unknown"
	}
}

// Connection is one handler attached to a signal.
type Connection struct {
	box       HandlerBox
	remove    func(*Connection)
	mode      ConnectionType
	mu        sync.Mutex
	connected bool
}

// Connected reports whether the connection is still attached.
func (c *Connection) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Disconnect detaches the handler and drops its box. It returns false if
// the connection was already disconnected.
func (c *Connection) Disconnect() bool {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return false
	}
	c.connected = false
	box := c.box.Take()
	remove := c.remove
	c.mu.Unlock()

	if remove != nil {
		remove(c)
	}
	box.Drop()
	return true
}

func (c *Connection) Mode() ConnectionType {
	return c.mode
}

// words returns a copy of the box if still connected.
func (c *Connection) words() (HandlerBox, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return HandlerBox{}, false
	}
	return c.box, true
}

// Signal is the connection list of one signal on an emitting object.
// Handlers run for the receiver bound at construction.
type Signal[A any] struct {
	glue  *Glue[A]
	loop  *eventloop.Loop
	lock  locking.Locker
	name  string
	conns []*Connection
	mu    sync.Mutex
}

// New creates a signal whose handlers run on loop under lock.
func New[A any](name string, glue *Glue[A], loop *eventloop.Loop, lock locking.Locker) *Signal[A] {
	if lock == nil {
		lock = locking.None{}
	}
	return &Signal[A]{
		name: name,
		glue: glue,
		loop: loop,
		lock: lock,
	}
}

func (s *Signal[A]) Name() string {
	return s.name
}

// Connect moves box into a new connection. box is empty afterwards.
func (s *Signal[A]) Connect(box *HandlerBox, mode ConnectionType) *Connection {
	c := &Connection{
		box:       box.Take(),
		mode:      mode,
		connected: true,
		remove:    s.remove,
	}

	s.mu.Lock()
	s.conns = append(s.conns, c)
	s.mu.Unlock()

	Logger().Debug("signal connected",
		zap.String("signal", s.name),
		zap.Stringer("mode", mode))
	return c
}

// ConnectFunc boxes fn and connects it.
func (s *Signal[A]) ConnectFunc(fn func(ctx context.Context, args A), mode ConnectionType) *Connection {
	box := s.glue.Box(fn)
	return s.Connect(&box, mode)
}

// Len returns the number of live connections.
func (s *Signal[A]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// DisconnectAll tears down every connection and returns how many there were.
func (s *Signal[A]) DisconnectAll() int {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	n := 0
	for _, c := range conns {
		if c.Disconnect() {
			n++
		}
	}
	return n
}

func (s *Signal[A]) remove(c *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.conns {
		if cur == c {
			s.conns = append(s.conns[:i:i], s.conns[i+1:]...)
			return
		}
	}
}

// Emit delivers args to every connection in connection order. Queued
// deliveries that cannot be posted are reported in the returned error.
func (s *Signal[A]) Emit(ctx context.Context, args A) error {
	s.mu.Lock()
	conns := make([]*Connection, len(s.conns))
	copy(conns, s.conns)
	s.mu.Unlock()

	var errs qerrors.List
	for _, c := range conns {
		if err := s.deliver(ctx, c, args); err != nil {
			errs.Add(err)
		}
	}
	return errs.Err()
}

func (s *Signal[A]) deliver(ctx context.Context, c *Connection, args A) *qerrors.Error {
	mode := c.mode
	onLoop := s.loop == nil || s.loop.OnLoop(ctx)
	if mode == Auto {
		if onLoop {
			mode = Direct
		} else {
			mode = Queued
		}
	}
	if s.loop == nil {
		mode = Direct
	}
	if mode == BlockingQueued && onLoop {
		Logger().Warn("blocking queued emission on receiver loop, delivering directly",
			zap.String("signal", s.name))
		mode = Direct
	}

	switch mode {
	case Direct:
		s.call(ctx, c, args)
		return nil
	case BlockingQueued:
		done := make(chan struct{})
		err := s.loop.Post(func(ctx context.Context) {
			defer close(done)
			s.call(ctx, c, args)
		})
		if err != nil {
			return s.postFailed(err)
		}
		select {
		case <-done:
		case <-ctx.Done():
		}
		return nil
	default:
		err := s.loop.Post(func(ctx context.Context) {
			s.call(ctx, c, args)
		})
		if err != nil {
			return s.postFailed(err)
		}
		return nil
	}
}

func (s *Signal[A]) call(ctx context.Context, c *Connection, args A) {
	box, ok := c.words()
	if !ok {
		return
	}
	ctx, unlock := s.lock.Lock(ctx)
	defer unlock()
	s.glue.Call(ctx, &box, args)
}

func (s *Signal[A]) postFailed(err error) *qerrors.Error {
	Logger().Error("failed to post queued emission",
		zap.String("signal", s.name),
		zap.Error(err))
	return qerrors.New(qerrors.PhaseConnect, qerrors.KindPostFailed).
		Member(s.name).
		Cause(err).
		Build()
}
