package hxstore

import (
	"context"

	"github.com/a-h/templ"
)

// View is the component being connected. It receives the merged props and
// knows nothing about the store behind them.
//
//	func (c *Counter) Render(ctx context.Context, props hxstore.Props) templ.Component {
//	    return counterTemplate(props.Int("count"), props.Action("increment"))
//	}
//
// Render should be pure: it reads props and produces markup.
type View interface {
	Render(ctx context.Context, props Props) templ.Component
}

// ViewFunc adapts a function to View.
type ViewFunc func(ctx context.Context, props Props) templ.Component

// Render calls f.
func (f ViewFunc) Render(ctx context.Context, props Props) templ.Component {
	return f(ctx, props)
}

// Namer is implemented by views that provide their own display name.
type Namer interface {
	Name() string
}

// Component is one live instance of a connected view. It covers the whole
// lifecycle a host drives: render, candidate updates and teardown.
//
// Construction happens through ComponentType.New.
type Component interface {
	// ID identifies the instance.
	ID() string
	// Render returns the current output. The first call mounts the
	// instance; later calls return the output of the last accepted update.
	Render() templ.Component
	// Props returns the merged props behind the current output.
	Props() Props
	// SetProps offers new own props and reports whether the instance
	// re-rendered.
	SetProps(next Props) (bool, error)
	// SetContext offers a new host context and reports whether the
	// instance re-rendered.
	SetContext(next Props) (bool, error)
	// Action returns a bound action creator by prop name.
	Action(name string) *BoundAction
	// Phase reports the lifecycle phase.
	Phase() Phase
	// Unmount tears the instance down. It is safe to call more than once.
	Unmount()
}

// ComponentType constructs Components. It is what Connect produces.
type ComponentType interface {
	Name() string
	New(ownProps Props, opts ...MountOption) (Component, error)
}
