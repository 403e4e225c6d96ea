package middleware

import "github.com/pthm/hxstore"

// ThunkType marks actions that carry a ThunkFunc payload.
const ThunkType = "@@hxstore/thunk"

// ThunkFunc is deferred work run by the Thunk middleware in place of an
// action. It may dispatch any number of actions, now or later.
type ThunkFunc[S any] func(dispatch hxstore.Dispatch, getState func() S) any

// NewThunk wraps fn in an action for the Thunk middleware.
//
//	hxstore.ActionCreators{
//	    "save": func(args ...any) hxstore.Action {
//	        return middleware.NewThunk(func(dispatch hxstore.Dispatch, getState func() State) any {
//	            dispatch(hxstore.Action{Type: "SAVING"})
//	            go func() {
//	                err := save(getState())
//	                dispatch(hxstore.Action{Type: "SAVED", Payload: err})
//	            }()
//	            return nil
//	        })
//	    },
//	}
func NewThunk[S any](fn ThunkFunc[S]) hxstore.Action {
	return hxstore.Action{Type: ThunkType, Payload: fn}
}

// Thunk runs thunk actions instead of forwarding them and returns the
// thunk's result from dispatch. Other actions pass through unchanged.
func Thunk[S any]() hxstore.Middleware[S] {
	return func(api hxstore.MiddlewareAPI[S]) func(hxstore.Dispatch) hxstore.Dispatch {
		return func(next hxstore.Dispatch) hxstore.Dispatch {
			return func(action hxstore.Action) any {
				if action.Type == ThunkType {
					if fn, ok := action.Payload.(ThunkFunc[S]); ok && fn != nil {
						return fn(api.Dispatch, api.GetState)
					}
				}
				return next(action)
			}
		}
	}
}
