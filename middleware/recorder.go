package middleware

import (
	"sync"

	"github.com/pthm/hxstore"
)

// Recorder keeps every action that reached it, in order.
type Recorder struct {
	mu      sync.Mutex
	actions []hxstore.Action
}

// Record returns a middleware that appends actions to r and forwards them.
func Record[S any](r *Recorder) hxstore.Middleware[S] {
	return func(hxstore.MiddlewareAPI[S]) func(hxstore.Dispatch) hxstore.Dispatch {
		return func(next hxstore.Dispatch) hxstore.Dispatch {
			return func(action hxstore.Action) any {
				r.mu.Lock()
				r.actions = append(r.actions, action)
				r.mu.Unlock()
				return next(action)
			}
		}
	}
}

// Actions returns a copy of the recorded actions.
func (r *Recorder) Actions() []hxstore.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]hxstore.Action(nil), r.actions...)
}

// Types returns the recorded action types.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.actions))
	for i, a := range r.actions {
		types[i] = a.Type
	}
	return types
}

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = nil
}
