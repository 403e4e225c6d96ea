package hxstore

// Dispatch sends an action through a store's dispatch chain. It returns
// whatever the chain returns: the action itself at the terminal stage, or a
// middleware-specific value (a channel, a result, nil when swallowed).
type Dispatch func(action Action) any

// MiddlewareAPI is the view of its store a middleware is given.
//
// Dispatch re-enters the full middleware chain; GetState reads the
// committed state.
type MiddlewareAPI[S any] struct {
	Dispatch Dispatch
	GetState func() S
}

// Middleware intercepts dispatch. Given the store API it returns a wrapper
// that receives the next dispatch in the chain and returns its own.
//
// A middleware may forward the action unchanged, replace it, dispatch
// additional actions, forward later from another goroutine, or swallow it
// by returning without calling next.
//
//	func logTypes[S any](api hxstore.MiddlewareAPI[S]) func(hxstore.Dispatch) hxstore.Dispatch {
//	    return func(next hxstore.Dispatch) hxstore.Dispatch {
//	        return func(a hxstore.Action) any {
//	            log.Println(a.Type)
//	            return next(a)
//	        }
//	    }
//	}
type Middleware[S any] func(api MiddlewareAPI[S]) func(next Dispatch) Dispatch

// Enhancer wraps the middleware-composed dispatch of a store. The zero
// enhancer leaves the chain unchanged.
type Enhancer[S any] func(api MiddlewareAPI[S], dispatch Dispatch) Dispatch

// Compose chains dispatch wrappers so that the leftmost runs first and the
// rightmost calls the terminal dispatch. With no wrappers the terminal
// dispatch is returned unchanged.
func Compose(wrappers ...func(next Dispatch) Dispatch) func(terminal Dispatch) Dispatch {
	return func(terminal Dispatch) Dispatch {
		dispatch := terminal
		for i := len(wrappers) - 1; i >= 0; i-- {
			dispatch = wrappers[i](dispatch)
		}
		return dispatch
	}
}

// applyMiddleware builds the dispatch chain for a store.
func applyMiddleware[S any](api MiddlewareAPI[S], terminal Dispatch, middlewares []Middleware[S]) Dispatch {
	wrappers := make([]func(Dispatch) Dispatch, 0, len(middlewares))
	for _, mw := range middlewares {
		if mw == nil {
			continue
		}
		wrappers = append(wrappers, mw(api))
	}
	return Compose(wrappers...)(terminal)
}
