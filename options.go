package hxstore

import (
	"go.uber.org/zap"

	"github.com/pthm/hxstore/lib/equal"
)

// PropsEqual compares two props maps.
type PropsEqual func(a, b Props) bool

// StatesEqual compares two states.
type StatesEqual[S any] func(a, b S) bool

// MergeProps combines state, bound actions and own props into the props
// handed to the view.
type MergeProps[S any] func(state S, actions BoundActions, ownProps Props) Props

// Options configures a connected view. Every instance mounted from the
// same Connect call shares these options; they never change after
// Connect returns.
type Options[S any] struct {
	// Pure enables the update decision. When false every candidate update
	// re-renders.
	Pure bool

	AreOwnPropsEqual    PropsEqual
	AreStatesEqual      StatesEqual[S]
	AreMergedPropsEqual PropsEqual

	// MergeProps builds the view props. Nil selects DefaultMergeProps,
	// with the state converted once per distinct state value so that an
	// unchanged state yields identical nested props.
	MergeProps MergeProps[S]

	// Middlewares run in declaration order before the reducer.
	Middlewares []Middleware[S]
	// Enhancer wraps the composed middleware chain.
	Enhancer Enhancer[S]

	Logger *zap.Logger
}

// DefaultOptions returns the hard defaults: pure, shallow props
// comparison, SameValueZero state comparison, own < state < actions
// merging, no middleware. MergeProps is left nil to select the default
// merge.
func DefaultOptions[S any]() Options[S] {
	return Options[S]{
		Pure:                true,
		AreOwnPropsEqual:    ShallowEqual,
		AreStatesEqual:      SameValueZero[S],
		AreMergedPropsEqual: ShallowEqual,
		Logger:              zap.NewNop(),
	}
}

// ShallowEqual reports whether two props maps hold the same keys with
// identical values.
func ShallowEqual(a, b Props) bool {
	return equal.Shallow(a, b)
}

// SameValueZero compares states by value for scalars and by identity for
// maps, slices and pointers.
func SameValueZero[S any](a, b S) bool {
	return equal.SameValueZero(a, b)
}

// DeepEqual compares states structurally. Use it with WithStatesEqual when
// the reducer returns fresh copies for unchanged data.
func DeepEqual[S any](a, b S) bool {
	return equal.Deep(a, b)
}

// Option configures Connect.
type Option[S any] func(*Options[S])

// WithPure toggles the update decision.
func WithPure[S any](pure bool) Option[S] {
	return func(o *Options[S]) {
		o.Pure = pure
	}
}

// WithOwnPropsEqual sets the own-props comparator.
func WithOwnPropsEqual[S any](fn PropsEqual) Option[S] {
	return func(o *Options[S]) {
		if fn != nil {
			o.AreOwnPropsEqual = fn
		}
	}
}

// WithStatesEqual sets the state comparator.
func WithStatesEqual[S any](fn StatesEqual[S]) Option[S] {
	return func(o *Options[S]) {
		if fn != nil {
			o.AreStatesEqual = fn
		}
	}
}

// WithMergedPropsEqual sets the merged-props comparator.
func WithMergedPropsEqual[S any](fn PropsEqual) Option[S] {
	return func(o *Options[S]) {
		if fn != nil {
			o.AreMergedPropsEqual = fn
		}
	}
}

// WithMergeProps replaces the default merge.
func WithMergeProps[S any](fn MergeProps[S]) Option[S] {
	return func(o *Options[S]) {
		if fn != nil {
			o.MergeProps = fn
		}
	}
}

// WithMiddleware appends middlewares to the dispatch chain.
func WithMiddleware[S any](mws ...Middleware[S]) Option[S] {
	return func(o *Options[S]) {
		o.Middlewares = append(o.Middlewares, mws...)
	}
}

// WithEnhancer sets the dispatch-chain enhancer.
func WithEnhancer[S any](e Enhancer[S]) Option[S] {
	return func(o *Options[S]) {
		o.Enhancer = e
	}
}

// WithLogger sets the logger used by the store and instance lifecycle.
func WithLogger[S any](logger *zap.Logger) Option[S] {
	return func(o *Options[S]) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithOptions overlays a full Options value. Pure is always copied; nil
// comparators, merge and logger keep their defaults.
func WithOptions[S any](opts Options[S]) Option[S] {
	return func(o *Options[S]) {
		o.Pure = opts.Pure
		WithOwnPropsEqual[S](opts.AreOwnPropsEqual)(o)
		WithStatesEqual(opts.AreStatesEqual)(o)
		WithMergedPropsEqual[S](opts.AreMergedPropsEqual)(o)
		WithMergeProps(opts.MergeProps)(o)
		WithMiddleware(opts.Middlewares...)(o)
		WithEnhancer(opts.Enhancer)(o)
		WithLogger[S](opts.Logger)(o)
	}
}

func buildOptions[S any](opts []Option[S]) Options[S] {
	o := DefaultOptions[S]()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	// Copy so callers cannot mutate the chain after Connect.
	o.Middlewares = append([]Middleware[S](nil), o.Middlewares...)
	return o
}
