package middleware

import (
	"context"
	"time"

	"github.com/pthm/hxstore"
)

// Delay holds back actions of the given types (all actions when none are
// given) and forwards them after d. Dispatch returns a channel that
// receives the forwarded result, or nil when ctx ends first and the action
// is dropped.
//
// Cancel ctx when the owning instance unmounts so pending actions do not
// outlive it.
func Delay[S any](ctx context.Context, d time.Duration, types ...string) hxstore.Middleware[S] {
	match := typeSet(types)
	return func(api hxstore.MiddlewareAPI[S]) func(hxstore.Dispatch) hxstore.Dispatch {
		return func(next hxstore.Dispatch) hxstore.Dispatch {
			return func(action hxstore.Action) any {
				if !match(action.Type) {
					return next(action)
				}

				done := make(chan any, 1)
				go func() {
					timer := time.NewTimer(d)
					defer timer.Stop()

					select {
					case <-timer.C:
						done <- next(action)
					case <-ctx.Done():
						done <- nil
					}
					close(done)
				}()
				return (<-chan any)(done)
			}
		}
	}
}

func typeSet(types []string) func(string) bool {
	if len(types) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(t string) bool {
		_, ok := set[t]
		return ok
	}
}
