package hxstore

import (
	"reflect"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Connected is a view decorated with a local store. Each Mount builds an
// independent store and middleware chain for the new instance; nothing is
// shared between instances.
type Connected[S any] struct {
	name    string
	reducer Reducer[S]
	source  ActionCreatorSource
	view    View
	opts    Options[S]
}

// Connect returns a decorator that wraps a view with a reducer-driven
// local store.
//
//	counter := hxstore.Connect(reducer, hxstore.ActionCreators{
//	    "increment": func(...any) hxstore.Action { return hxstore.Action{Type: "INC"} },
//	})(counterView)
//
//	inst, err := counter.Mount(hxstore.Props{"label": "Clicks"})
//
// A nil source binds only a raw "dispatch" action. Configuration problems
// such as a nil reducer or view are reported by Mount.
func Connect[S any](reducer Reducer[S], source ActionCreatorSource, opts ...Option[S]) func(View) *Connected[S] {
	options := buildOptions(opts)
	return func(view View) *Connected[S] {
		return &Connected[S]{
			name:    "ConnectedLocal(" + viewName(view) + ")",
			reducer: reducer,
			source:  source,
			view:    view,
			opts:    options,
		}
	}
}

// Name returns the display name, ConnectedLocal(<view name>).
func (c *Connected[S]) Name() string {
	return c.name
}

// Options returns the resolved options.
func (c *Connected[S]) Options() Options[S] {
	return c.opts
}

// MountOption configures a single instance.
type MountOption func(*mountConfig)

type mountConfig struct {
	id       string
	context  Props
	onRender func(templ.Component)
}

// WithID sets the instance ID instead of generating a UUID. IDs must be
// unique within a Registry.
func WithID(id string) MountOption {
	return func(c *mountConfig) {
		c.id = id
	}
}

// WithContext sets the initial host context compared by the update
// decision.
func WithContext(ctx Props) MountOption {
	return func(c *mountConfig) {
		c.context = ctx
	}
}

// OnRender registers a hook called after every accepted update with the
// new output. It is not called for the first render, which the host asks
// for explicitly.
func OnRender(fn func(templ.Component)) MountOption {
	return func(c *mountConfig) {
		c.onRender = fn
	}
}

// Mount constructs an instance: it builds the store, subscribes to it,
// binds the action creators against the instance's dispatch and own props
// and snapshots the initial state. The instance renders on its first
// Render call.
func (c *Connected[S]) Mount(ownProps Props, opts ...MountOption) (*Instance[S], error) {
	if c.view == nil {
		return nil, ErrNilView
	}

	cfg := mountConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	store, err := newStore(c.reducer, c.opts.Enhancer, c.opts.Middlewares, c.opts.Logger)
	if err != nil {
		return nil, err
	}

	if ownProps == nil {
		ownProps = Props{}
	}
	if cfg.context == nil {
		cfg.context = Props{}
	}

	id := cfg.id
	if id == "" {
		id = uuid.NewString()
	}
	in := &Instance[S]{
		id:       id,
		conn:     c,
		store:    store,
		ownProps: ownProps,
		context:  cfg.context,
		state:    store.GetState(),
		onRender: cfg.onRender,
		logger:   c.opts.Logger.With(zap.String("component", c.name), zap.String("instance", id)),
	}
	in.actions = BindActionCreators(c.source, store.Dispatch, ownProps)
	in.unsubscribe = store.Subscribe(in.handleStoreChange)
	in.phase = PhaseConstructed

	in.logger.Debug("instance constructed")
	return in, nil
}

// New implements ComponentType.
func (c *Connected[S]) New(ownProps Props, opts ...MountOption) (Component, error) {
	in, err := c.Mount(ownProps, opts...)
	if err != nil {
		return nil, err
	}
	return in, nil
}

func viewName(view View) string {
	if view == nil {
		return "Component"
	}
	if n, ok := view.(Namer); ok && n.Name() != "" {
		return n.Name()
	}
	t := reflect.TypeOf(view)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" && t != reflect.TypeOf(ViewFunc(nil)) {
		return name
	}
	return "Component"
}
