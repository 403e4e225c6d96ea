package hxstore

import "fmt"

// Reducer computes the next state from the current state and an action.
//
// On construction a store calls the reducer with the zero S and an action
// of type InitType; the reducer is expected to return its initial state
// for that call.
type Reducer[S any] func(state S, action Action) S

// Handlers maps action types to state transitions.
type Handlers[S any] map[string]Reducer[S]

// CreateReducer builds a reducer.
//
// handlers may be a Reducer[S] or a func(S, Action) S, returned unchanged,
// or a Handlers[S], map[string]Reducer[S] or map[string]func(S, Action) S,
// in which case the reducer looks up the action type and falls back to
// returning the state it was given. The InitType action yields initial;
// any other action, including one with an empty type, is looked up like
// the rest.
func CreateReducer[S any](handlers any, initial S) (Reducer[S], error) {
	switch h := handlers.(type) {
	case Reducer[S]:
		if h == nil {
			return nil, ErrNilReducer
		}
		return h, nil
	case func(S, Action) S:
		if h == nil {
			return nil, ErrNilReducer
		}
		return h, nil
	case Handlers[S]:
		return fromHandlers(h, initial), nil
	case map[string]Reducer[S]:
		return fromHandlers(h, initial), nil
	case map[string]func(S, Action) S:
		hs := make(Handlers[S], len(h))
		for k, fn := range h {
			hs[k] = fn
		}
		return fromHandlers(hs, initial), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidHandlers, handlers)
	}
}

// MustReducer is like CreateReducer but panics on error.
func MustReducer[S any](handlers any, initial S) Reducer[S] {
	r, err := CreateReducer(handlers, initial)
	if err != nil {
		panic(err)
	}
	return r
}

func fromHandlers[S any](handlers Handlers[S], initial S) Reducer[S] {
	return func(state S, action Action) S {
		if action.IsBootstrap() {
			state = initial
		}
		if handler, ok := handlers[action.Type]; ok && handler != nil {
			return handler(state, action)
		}
		return state
	}
}
