package demo

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pthm/hxstore"
	"github.com/pthm/hxstore/middleware"
)

// Todo is one list entry.
type Todo struct {
	Title string `msgpack:"title"`
	Done  bool   `msgpack:"done"`
}

// TodoList is the todo widget state.
type TodoList struct {
	Items []Todo `msgpack:"items"`
}

const (
	todoAdd       = "TODO_ADD"
	todoToggle    = "TODO_TOGGLE"
	todoClearDone = "TODO_CLEAR_DONE"
)

func todoReducer(s TodoList, a hxstore.Action) TodoList {
	switch a.Type {
	case todoAdd:
		title, _ := a.Payload.(string)
		items := append(append([]Todo(nil), s.Items...), Todo{Title: title})
		return TodoList{Items: items}
	case todoToggle:
		i, ok := a.Payload.(int)
		if !ok || i < 0 || i >= len(s.Items) {
			return s
		}
		items := append([]Todo(nil), s.Items...)
		items[i].Done = !items[i].Done
		return TodoList{Items: items}
	case todoClearDone:
		var items []Todo
		for _, it := range s.Items {
			if !it.Done {
				items = append(items, it)
			}
		}
		return TodoList{Items: items}
	}
	return s
}

// todoActions reads the title from posted form fields and the index from
// the signed action arguments.
var todoActions = hxstore.ActionCreators{
	"add": func(args ...any) hxstore.Action {
		var title string
		for _, arg := range args {
			if fields, ok := arg.(hxstore.Props); ok {
				title = strings.TrimSpace(fields.String("title"))
			}
		}
		return hxstore.Action{Type: todoAdd, Payload: title}
	},
	"toggle": func(args ...any) hxstore.Action {
		if len(args) == 0 {
			return hxstore.Action{Type: todoToggle}
		}
		return hxstore.Action{Type: todoToggle, Payload: hxstore.Props{"i": args[0]}.Int("i")}
	},
	"clearDone": func(...any) hxstore.Action { return hxstore.Action{Type: todoClearDone} },
}

// dropBlankAdds filters out additions without a title.
func dropBlankAdds(a hxstore.Action, _ TodoList) bool {
	return a.Type != todoAdd || a.Payload != ""
}

// NewTodoList connects the todo list view. Items are compared
// structurally since the reducer copies the slice on every change.
func NewTodoList(reg *hxstore.Registry, logger *zap.Logger) *hxstore.Connected[TodoList] {
	return hxstore.Connect(todoReducer, todoActions,
		hxstore.WithLogger[TodoList](logger),
		hxstore.WithStatesEqual[TodoList](hxstore.DeepEqual[TodoList]),
		hxstore.WithMiddleware(
			middleware.Logger[TodoList](logger, zapcore.DebugLevel),
			middleware.Filter(dropBlankAdds),
		),
	)(&todoView{reg: reg})
}

type todoView struct {
	reg *hxstore.Registry
}

func (v *todoView) Name() string { return "TodoList" }

func (v *todoView) Render(_ context.Context, props hxstore.Props) templ.Component {
	id := props.String("id")
	items, _ := props["items"].([]any)

	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.open("section", templ.Attributes{"class": "todos"})

		attrs, err := v.reg.ActionAttrsFor(id, "add")
		if err != nil {
			return err
		}
		h.open("form", attrs)
		h.open("input", templ.Attributes{"name": "title", "placeholder": "What needs doing?"})
		h.raw("</form>")

		h.open("ul", nil)
		for i, item := range items {
			todo := hxstore.Props{}
			if m, ok := item.(map[string]any); ok {
				todo = m
			}
			h.open("li", templ.Attributes{"class": doneClass(todo.Bool("done"))})
			attrs, err := v.reg.ActionAttrsFor(id, "toggle", i)
			h.button(todo.String("title"), attrs, err)
			h.close("li")
		}
		h.close("ul")

		attrs, err = v.reg.ActionAttrsFor(id, "clearDone")
		h.button("clear done", attrs, err)

		h.close("section")
		return h.err
	})
}

func doneClass(done bool) string {
	if done {
		return "done"
	}
	return "open"
}
