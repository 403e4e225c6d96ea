package middleware

import "github.com/pthm/hxstore"

// Filter swallows actions for which keep returns false. A swallowed
// action never reaches the reducer and dispatch returns nil.
func Filter[S any](keep func(action hxstore.Action, state S) bool) hxstore.Middleware[S] {
	return func(api hxstore.MiddlewareAPI[S]) func(hxstore.Dispatch) hxstore.Dispatch {
		return func(next hxstore.Dispatch) hxstore.Dispatch {
			return func(action hxstore.Action) any {
				if !keep(action, api.GetState()) {
					return nil
				}
				return next(action)
			}
		}
	}
}

// Only keeps actions whose type is in types.
func Only[S any](types ...string) hxstore.Middleware[S] {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	return Filter(func(action hxstore.Action, _ S) bool {
		_, ok := allowed[action.Type]
		return ok
	})
}
