package generator

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// scenario runs inside the generated package against the real runtime.
const scenario = `package myobject

import (
	"context"
	"errors"
	"testing"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/eventloop"
	"github.com/wippyai/qtbind/signal"
)

type logic struct{}

func (logic) Increment(ctx context.Context, self *MyObject) { self.SetCount(ctx, self.Count()+1) }

func (logic) Sum(ctx context.Context, self *MyObject, a int32, b int32) int32 { return a + b }

func (logic) Reset(ctx context.Context, self *MyObject) { self.SetCount(ctx, 0) }

func (logic) Snapshot(ctx context.Context, self *MyObject) Point { return Point{X: self.Count()} }

type hooks struct{}

func (hooks) RouteArguments0(arg0 int32, arg1 string) MyObjectArguments0 {
	return MyObjectArguments0{
		New:        MyObjectNewArguments0{Arg0: arg0},
		Initialize: MyObjectInitializeArguments0{Arg0: arg1},
	}
}

func (hooks) NewHost0(MyObjectNewArguments0) MyObjectLogic { return logic{} }

func (hooks) Initialize0(ctx context.Context, self *MyObject, args MyObjectInitializeArguments0) {
	self.SetLabel(ctx, args.Arg0)
}

func TestGeneratedObject(t *testing.T) {
	ctx := context.Background()
	loop := eventloop.New()
	obj, err := NewMyObject0(ctx, loop, hooks{}, 0, "start")
	if err != nil {
		t.Fatalf("NewMyObject0: %v", err)
	}
	if obj.Label() != "start" {
		t.Errorf("Label = %q", obj.Label())
	}

	notified := 0
	obj.ConnectCountChanged(func(context.Context) { notified++ }, signal.Direct)

	obj.SetCount(ctx, 0)
	loop.Drain(ctx)
	if notified != 0 {
		t.Fatalf("setting the current value notified %d times", notified)
	}

	obj.SetCount(ctx, 5)
	loop.Drain(ctx)
	if notified != 1 {
		t.Fatalf("notified %d times, want 1", notified)
	}
	if obj.Count() != 5 {
		t.Fatalf("Count = %d, want 5", obj.Count())
	}
	if got := obj.Sum(ctx, 2, 3); got != 5 {
		t.Errorf("Sum = %d", got)
	}

	th, err := obj.QtThread()
	if err != nil {
		t.Fatalf("QtThread: %v", err)
	}
	clone := th.Clone()
	if err := loop.Post(func(context.Context) { obj.Destroy() }); err != nil {
		t.Fatal(err)
	}
	loop.Drain(ctx)

	ran := false
	err = clone.Queue(func(context.Context, *MyObject) { ran = true })
	if !errors.Is(err, qerrors.ErrObjectDestroyed) {
		t.Fatalf("Queue after destroy = %v", err)
	}
	loop.Drain(ctx)
	if ran {
		t.Fatal("queued work ran on a destroyed object")
	}
}
`

// TestGenerate_HostCompiles builds the generated host files of the fixture
// as a package of this module and runs a scenario against them.
func TestGenerate_HostCompiles(t *testing.T) {
	gobin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not in PATH")
	}
	if testing.Short() {
		t.Skip("builds a generated package")
	}

	dir, err := os.MkdirTemp(".", "qtbindcompile")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	out := Generate(load(t), Options{})
	for _, f := range out.Files {
		if f.Kind != KindHost {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, f.Path), f.Contents, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "scenario_test.go"), []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}

	pkg := "./" + filepath.Base(dir)
	for _, args := range [][]string{
		{"vet", pkg},
		{"test", "-count=1", pkg},
	} {
		cmd := exec.Command(gobin, args...)
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("go %v: %v\n%s", args, err, output)
		}
	}
}
