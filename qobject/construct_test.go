package qobject

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/eventloop"
	"github.com/wippyai/qtbind/handle"
)

type widget struct {
	label string
	ready bool
}

func TestConstruct_Order(t *testing.T) {
	o := New("Widget", eventloop.New())
	var order []string

	c := Constructor[int, string, bool, widget]{
		Base: func(o *Object, parent int) {
			assert.Equal(t, PhaseNone, o.Phase())
			order = append(order, "base")
		},
		New: func(label string) *widget {
			assert.Equal(t, PhaseBase, o.Phase())
			order = append(order, "host")
			return &widget{label: label}
		},
		Initialize: func(ctx context.Context, o *Object, w *widget, ready bool) {
			assert.Equal(t, PhaseHost, o.Phase())
			assert.False(t, o.Initialized())
			assert.True(t, o.Locker().Held(ctx))
			order = append(order, "initialize")
			w.ready = ready
		},
	}

	w, err := Construct(context.Background(), o, c, Args[int, string, bool]{Base: 1, New: "hello", Initialize: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "host", "initialize"}, order)
	assert.Equal(t, "hello", w.label)
	assert.True(t, w.ready)
	assert.True(t, o.Initialized())

	stored, ok := handle.Lookup[*widget](handle.Global(), o.Host())
	require.True(t, ok)
	assert.Same(t, w, stored)

	o.Destroy()
	_, ok = handle.Global().Get(o.Host())
	assert.False(t, ok)
}

func TestConstruct_NoNotifyDuringInitialize(t *testing.T) {
	loop := eventloop.New()
	o := New("Widget", loop)

	var label *Property[string]
	c := Constructor[struct{}, struct{}, string, widget]{
		New: func(struct{}) *widget {
			label = NewProperty(o, "labelChanged", "")
			return &widget{}
		},
		Initialize: func(_ context.Context, _ *Object, w *widget, v string) {
			assert.True(t, label.Set(v))
			w.label = label.Get()
		},
	}
	w, err := Construct(context.Background(), o, c, Args[struct{}, struct{}, string]{Initialize: "base"})
	require.NoError(t, err)
	assert.Equal(t, "base", w.label, "initialize hook observes values set during construction")
	assert.Equal(t, 0, loop.Len(), "no notify before the object is initialized")

	label.Set("after")
	assert.Equal(t, 1, loop.Len())
}

func TestConstruct_Errors(t *testing.T) {
	o := New("Widget", eventloop.New())
	_, err := Construct(context.Background(), o, Constructor[struct{}, struct{}, struct{}, widget]{}, Args[struct{}, struct{}, struct{}]{})
	assert.True(t, errors.Is(err, &qerrors.Error{Phase: qerrors.PhaseConstruct, Kind: qerrors.KindInvalidInput}))

	c := Constructor[struct{}, struct{}, struct{}, widget]{New: func(struct{}) *widget { return &widget{} }}
	_, err = Construct(context.Background(), o, c, Args[struct{}, struct{}, struct{}]{})
	require.NoError(t, err)
	_, err = Construct(context.Background(), o, c, Args[struct{}, struct{}, struct{}]{})
	assert.Error(t, err, "an object is constructed once")
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "initialized", PhaseInitialized.String())
	assert.Equal(t, "destroyed", PhaseDestroyed.String())
}
