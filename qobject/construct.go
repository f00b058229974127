package qobject

import (
	"context"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/handle"
)

// Args is the routed argument state of one constructor call: what goes to
// the native base class, to host allocation and to the initialize hook.
type Args[B, N, I any] struct {
	Base       B
	New        N
	Initialize I
}

// Constructor is one constructor variant. Base and Initialize are optional.
type Constructor[B, N, I, H any] struct {
	Base       func(o *Object, args B)
	New        func(args N) *H
	Initialize func(ctx context.Context, o *Object, host *H, args I)
}

// Construct runs a constructor variant in the fixed order base class, host
// allocation, initialize hook. The initialize hook runs under the object's
// lock and the object counts as initialized only once it returns.
func Construct[B, N, I, H any](ctx context.Context, o *Object, c Constructor[B, N, I, H], args Args[B, N, I]) (*H, error) {
	if c.New == nil {
		return nil, qerrors.New(qerrors.PhaseConstruct, qerrors.KindInvalidInput).
			Object(o.name).
			Detail("constructor has no host allocation").
			Build()
	}
	if p := o.Phase(); p != PhaseNone {
		return nil, qerrors.New(qerrors.PhaseConstruct, qerrors.KindInvalidInput).
			Object(o.name).
			Detail("object already in phase %s", p).
			Build()
	}

	if c.Base != nil {
		c.Base(o, args.Base)
	}
	o.setPhase(PhaseBase)

	host := c.New(args.New)
	h := handle.Global().Insert(handle.KindHostObject, host)
	o.mu.Lock()
	o.host = h
	o.mu.Unlock()
	o.setPhase(PhaseHost)

	if c.Initialize != nil {
		ctx, unlock := o.lock.Lock(ctx)
		c.Initialize(ctx, o, host, args.Initialize)
		unlock()
	}
	o.MarkInitialized()
	return host, nil
}
