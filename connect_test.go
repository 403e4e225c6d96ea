package hxstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type counterState struct {
	Count int `msgpack:"count"`
}

var counterReducerFor = MustReducer[*counterState](Handlers[*counterState]{
	"INC": func(s *counterState, _ Action) *counterState { return &counterState{Count: s.Count + 1} },
	"ADD": func(s *counterState, a Action) *counterState {
		n, _ := a.Payload.(int)
		return &counterState{Count: s.Count + n}
	},
}, &counterState{})

type counterView struct{}

func (counterView) Render(_ context.Context, props Props) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<p>%s: %d</p>", props.String("label"), props.Int("count"))
		return err
	})
}

var counterActions = ActionCreators{
	"increment": func(...any) Action { return Action{Type: "INC"} },
	"add":       MustActionCreator("ADD", nil, nil).Func(),
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func TestConnectName(t *testing.T) {
	tests := []struct {
		name string
		view View
		want string
	}{
		{"struct view", counterView{}, "ConnectedLocal(counterView)"},
		{"pointer view", &counterView{}, "ConnectedLocal(counterView)"},
		{"func view", ViewFunc(func(context.Context, Props) templ.Component { return nil }), "ConnectedLocal(Component)"},
		{"nil view", nil, "ConnectedLocal(Component)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Connect(counterReducerFor, counterActions)(tt.view)
			if c.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", c.Name(), tt.want)
			}
		})
	}
}

type namedView struct{ counterView }

func (namedView) Name() string { return "Clicker" }

func TestConnectNamer(t *testing.T) {
	c := Connect(counterReducerFor, nil)(namedView{})
	if c.Name() != "ConnectedLocal(Clicker)" {
		t.Errorf("Name() = %q", c.Name())
	}
}

func TestMountErrors(t *testing.T) {
	_, err := Connect(counterReducerFor, counterActions)(nil).Mount(nil)
	if !errors.Is(err, ErrNilView) {
		t.Errorf("Mount() nil view error = %v, want ErrNilView", err)
	}

	_, err = Connect[int](nil, counterActions)(counterView{}).Mount(nil)
	if !errors.Is(err, ErrNilReducer) {
		t.Errorf("Mount() nil reducer error = %v, want ErrNilReducer", err)
	}
}

func TestCounterScenario(t *testing.T) {
	rec := &RenderRecorder{}
	inst, err := Connect(counterReducerFor, counterActions)(counterView{}).
		Mount(Props{"label": "Clicks"}, OnRender(rec.Record))
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if inst.Phase() != PhaseConstructed {
		t.Errorf("Phase() = %v, want constructed", inst.Phase())
	}

	if got := renderString(t, inst.Render()); got != "<p>Clicks: 0</p>" {
		t.Errorf("first render = %q", got)
	}
	if inst.Phase() != PhaseMounted {
		t.Errorf("Phase() = %v, want mounted", inst.Phase())
	}

	inst.Action("increment").Call()
	if got := renderString(t, rec.Last()); got != "<p>Clicks: 1</p>" {
		t.Errorf("after increment = %q", got)
	}

	inst.Props().Action("add").Call(1)
	if got := renderString(t, inst.Render()); got != "<p>Clicks: 2</p>" {
		t.Errorf("after add = %q", got)
	}
	if rec.Count() != 2 || inst.Renders() != 3 {
		t.Errorf("recorded %d renders, instance %d; want 2 and 3", rec.Count(), inst.Renders())
	}
	if inst.State().Count != 2 {
		t.Errorf("State().Count = %d, want 2", inst.State().Count)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	counter := Connect(counterReducerFor, counterActions)(counterView{})
	a, _ := counter.Mount(nil)
	b, _ := counter.Mount(nil)
	a.Render()
	b.Render()

	a.Action("increment").Call()
	a.Action("increment").Call()
	b.Action("increment").Call()

	if a.State().Count != 2 || b.State().Count != 1 {
		t.Errorf("counts = %d, %d; want 2, 1", a.State().Count, b.State().Count)
	}
	if a.ID() == b.ID() {
		t.Error("instances share an ID")
	}
}

func TestUnmount(t *testing.T) {
	rec := &RenderRecorder{}
	inst, _ := Connect(counterReducerFor, counterActions)(counterView{}).Mount(nil, OnRender(rec.Record))
	inst.Render()

	held := inst.Action("increment")
	inst.Unmount()
	inst.Unmount()

	if got := held.Call(); got != nil {
		t.Errorf("Call() after unmount = %v, want nil", got)
	}
	if got := inst.Dispatch(Action{Type: "INC"}); got != nil {
		t.Errorf("Dispatch() after unmount = %v, want nil", got)
	}
	if rec.Count() != 0 {
		t.Errorf("render hook called %d times after unmount", rec.Count())
	}
	if inst.Phase() != PhaseUnmounted {
		t.Errorf("Phase() = %v, want unmounted", inst.Phase())
	}
	if _, err := inst.SetProps(Props{"x": 1}); !errors.Is(err, ErrUnmounted) {
		t.Errorf("SetProps() after unmount error = %v, want ErrUnmounted", err)
	}
	if got := renderString(t, inst.Render()); got != "<p>: 0</p>" {
		t.Errorf("Render() after unmount = %q, want last output", got)
	}
}

func TestUnmountBeforeRender(t *testing.T) {
	inst, _ := Connect(counterReducerFor, counterActions)(counterView{}).Mount(nil)
	inst.Unmount()
	if got := renderString(t, inst.Render()); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestDispatchBeforeRender(t *testing.T) {
	rec := &RenderRecorder{}
	inst, _ := Connect(counterReducerFor, counterActions)(counterView{}).Mount(nil, OnRender(rec.Record))

	inst.Dispatch(Action{Type: "INC"})
	if rec.Count() != 0 {
		t.Error("update before first render should not call the hook")
	}
	if got := renderString(t, inst.Render()); got != "<p>: 1</p>" {
		t.Errorf("first render = %q, want count 1", got)
	}
}

func TestRawDispatchBinding(t *testing.T) {
	inst, _ := Connect(counterReducerFor, nil)(counterView{}).Mount(nil)
	inst.Render()

	inst.Action("dispatch").Call(Action{Type: "ADD", Payload: 5})
	if inst.State().Count != 5 {
		t.Errorf("Count = %d, want 5", inst.State().Count)
	}
}

func TestNewImplementsComponentType(t *testing.T) {
	var ct ComponentType = Connect(counterReducerFor, counterActions)(counterView{})

	c, err := ct.New(Props{"label": "n"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	result, err := TestRender(c)
	if err != nil {
		t.Fatalf("TestRender() error = %v", err)
	}
	if !result.HTMLContains("n: 0") {
		t.Errorf("HTML = %q", result.HTML)
	}

	_, err = Connect(counterReducerFor, counterActions)(nil).New(nil)
	if !IsConfigError(err) {
		t.Errorf("New() nil view error = %v, want config error", err)
	}
}

func TestInstanceLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	inst, _ := Connect(counterReducerFor, counterActions, WithLogger[*counterState](zap.New(core)))(counterView{}).Mount(nil)
	inst.Render()
	inst.Unmount()
	inst.Dispatch(Action{Type: "INC"})

	for _, msg := range []string{"instance constructed", "instance mounted", "instance unmounted", "dispatch after unmount ignored"} {
		if logs.FilterMessage(msg).Len() != 1 {
			t.Errorf("expected one %q log entry", msg)
		}
	}
	entry := logs.FilterMessage("instance mounted").All()[0]
	if entry.ContextMap()["component"] != "ConnectedLocal(counterView)" {
		t.Errorf("component field = %v", entry.ContextMap()["component"])
	}
}

func TestMountWithID(t *testing.T) {
	inst, err := Connect(counterReducerFor, counterActions)(counterView{}).Mount(nil, WithID("counter-1"))
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if inst.ID() != "counter-1" || DOMID(inst) != "hxs-counter-1" {
		t.Errorf("ID() = %q, DOMID() = %q", inst.ID(), DOMID(inst))
	}
}
