package demo

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pthm/hxstore"
	"github.com/pthm/hxstore/middleware"
)

// Counter is the counter widget state.
type Counter struct {
	Count int `msgpack:"count"`
}

var (
	increment = hxstore.MustActionCreator("INCREMENT", nil, nil)
	decrement = hxstore.MustActionCreator("DECREMENT", nil, nil)
	add       = hxstore.MustActionCreator("ADD", func(args ...any) any {
		if len(args) == 0 {
			return nil
		}
		return hxstore.Props{"n": args[0]}.Int("n")
	}, nil)
	reset = hxstore.MustActionCreator("RESET", nil, nil)
)

var counterReducer = hxstore.MustReducer(hxstore.Handlers[Counter]{
	increment.String(): func(s Counter, _ hxstore.Action) Counter { return Counter{Count: s.Count + 1} },
	decrement.String(): func(s Counter, _ hxstore.Action) Counter { return Counter{Count: s.Count - 1} },
	add.String(): func(s Counter, a hxstore.Action) Counter {
		n, _ := a.Payload.(int)
		return Counter{Count: s.Count + n}
	},
	reset.String(): func(Counter, hxstore.Action) Counter { return Counter{} },
}, Counter{})

// resetIfDirty only dispatches RESET when the count is not already zero.
func resetIfDirty(...any) hxstore.Action {
	return middleware.NewThunk(func(dispatch hxstore.Dispatch, getState func() Counter) any {
		if getState().Count == 0 {
			return nil
		}
		return dispatch(reset.Create())
	})
}

// NewCounter connects the counter view. Buttons post to reg.
func NewCounter(reg *hxstore.Registry, logger *zap.Logger) *hxstore.Connected[Counter] {
	return hxstore.Connect(counterReducer, hxstore.ActionCreators{
		"increment": increment.Func(),
		"decrement": decrement.Func(),
		"add":       add.Func(),
		"reset":     resetIfDirty,
	},
		hxstore.WithLogger[Counter](logger),
		hxstore.WithMiddleware(
			middleware.Logger[Counter](logger, zapcore.DebugLevel),
			middleware.Thunk[Counter](),
		),
	)(&counterView{reg: reg})
}

type counterView struct {
	reg *hxstore.Registry
}

func (v *counterView) Name() string { return "Counter" }

func (v *counterView) Render(_ context.Context, props hxstore.Props) templ.Component {
	id := props.String("id")
	label := props.String("label")
	count := props.Int("count")

	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.open("section", templ.Attributes{"class": "counter"})
		h.open("h2", nil)
		h.text(label)
		h.close("h2")
		h.open("output", nil)
		h.text(strconv.Itoa(count))
		h.close("output")

		attrs, err := v.reg.ActionAttrsFor(id, "decrement")
		h.button("-", attrs, err)
		attrs, err = v.reg.ActionAttrsFor(id, "increment")
		h.button("+", attrs, err)
		attrs, err = v.reg.ActionAttrsFor(id, "add", 10)
		h.button("+10", attrs, err)
		attrs, err = v.reg.ActionAttrsFor(id, "reset")
		h.button("reset", attrs, err)

		h.close("section")
		return h.err
	})
}
