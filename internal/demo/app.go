// Package demo is a small HTMX page with two locally connected widgets, a
// counter and a todo list, served through an hxstore Registry.
package demo

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/pthm/hxstore"
)

const htmxScript = `<script src="https://unpkg.com/htmx.org@2.0.4"></script>`

// App owns the demo instances and their registry.
type App struct {
	reg     *hxstore.Registry
	logger  *zap.Logger
	widgets []hxstore.Component
}

// New mounts the demo widgets and registers them with reg.
func New(reg *hxstore.Registry, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	counter, err := NewCounter(reg, logger).Mount(
		hxstore.Props{"id": "counter", "label": "Clicks"},
		hxstore.WithID("counter"),
	)
	if err != nil {
		return nil, err
	}
	todos, err := NewTodoList(reg, logger).Mount(
		hxstore.Props{"id": "todos"},
		hxstore.WithID("todos"),
	)
	if err != nil {
		counter.Unmount()
		return nil, err
	}

	reg.Add(counter, todos)
	return &App{
		reg:     reg,
		logger:  logger,
		widgets: []hxstore.Component{counter, todos},
	}, nil
}

// Handler serves the page at / and instance routes under the registry
// prefix.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(a.reg.Prefix(), a.reg.Handler())
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		if err := hxstore.Render(w, r, a.Page()); err != nil {
			a.logger.Warn("page render failed", zap.Error(err))
		}
	})
	return mux
}

// Page renders the full document.
func (a *App) Page() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html><html><head><title>hxstore demo</title>" + htmxScript + "</head><body>")
		if h.err != nil {
			return h.err
		}
		for _, c := range a.widgets {
			if err := hxstore.Wrap(c).Render(ctx, w); err != nil {
				return err
			}
		}
		h.raw("</body></html>")
		return h.err
	})
}

// Close unmounts the widgets.
func (a *App) Close() {
	a.reg.Close()
}
