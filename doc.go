// Package hxstore gives server-rendered templ views a private,
// reducer-driven store per mounted instance.
//
// A view is connected to a reducer and a set of action creators. Every
// Mount builds a fresh store for the new instance; nothing is shared with
// siblings, so two counters on the same page count independently.
//
//	counter := hxstore.Connect(reducer, hxstore.ActionCreators{
//	    "increment": func(...any) hxstore.Action { return hxstore.Action{Type: "INC"} },
//	})(counterView)
//
//	inst, err := counter.Mount(hxstore.Props{"label": "Clicks"})
//
// # Actions and Reducers
//
// Actions are plain values with a type, an optional payload, optional meta
// and an error flag. NewActionCreator builds creators whose String form is
// the action type, so they can key a handler map directly:
//
//	add := hxstore.MustActionCreator("ADD", nil, nil)
//	reducer := hxstore.MustReducer(hxstore.Handlers[int]{
//	    add.String(): func(s int, a hxstore.Action) int { return s + a.Payload.(int) },
//	}, 0)
//
// Unmatched action types, the empty type included, leave the state
// untouched. The InitType action a store sends on construction yields the
// initial state.
//
// # Props and Updates
//
// The view receives merged props: own props from the host, then the state
// flattened into props, then bound action creators. After each dispatch,
// SetProps or SetContext the instance decides whether to re-render by
// comparing own props, state, context and merged props. Comparators and the
// merge function are configurable through Options; WithPure(false) turns
// the decision off.
//
// Bound action creators are *BoundAction values. Calling one dispatches
// into the owning instance's store; after Unmount calls do nothing.
//
// # Middleware
//
// Middleware intercepts dispatch in declaration order and an Enhancer may
// wrap the composed chain. The middleware subpackage carries logging,
// thunks, filtering, delayed delivery and recording.
//
// # Serving Instances
//
// A Registry exposes mounted instances to HTMX:
//
//	reg := hxstore.NewRegistry(key)
//	reg.Add(inst)
//	http.Handle(hxstore.DefaultPrefix, reg.Handler())
//
//	<div { reg.ActionAttrs(inst, "increment")... }>+</div>
//
// Action arguments travel in signed (or, with Sensitive, encrypted) msgpack
// tokens. Mutating requests require the HX-Request header.
package hxstore
