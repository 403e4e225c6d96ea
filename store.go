package hxstore

import (
	"sync"

	"go.uber.org/zap"
)

// Store is a state container owned by exactly one component instance.
//
// The store holds the current state, applies its reducer on dispatch and
// notifies at most one subscriber after every committed change. Dispatch
// is synchronous: when it returns, the reducer has run and the subscriber
// has been called. Dispatches from several goroutines are applied one at
// a time.
//
// Reducers must not call back into their store.
type Store[S any] struct {
	mu      sync.Mutex
	reducer Reducer[S]
	state   S
	chain   Dispatch
	sub     *subscription
	closed  bool
	logger  *zap.Logger
}

type subscription struct {
	fn func()
}

// NewStore creates a store around reducer. The state is initialised by
// calling the reducer with the zero S and an InitType action. The
// middlewares are composed in declaration order and the result is wrapped
// by enhancer, which may be nil.
func NewStore[S any](reducer Reducer[S], enhancer Enhancer[S], middlewares ...Middleware[S]) (*Store[S], error) {
	return newStore(reducer, enhancer, middlewares, zap.NewNop())
}

func newStore[S any](reducer Reducer[S], enhancer Enhancer[S], middlewares []Middleware[S], logger *zap.Logger) (*Store[S], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var zero S
	s := &Store[S]{
		reducer: reducer,
		state:   reducer(zero, Action{Type: InitType}),
		logger:  logger,
	}

	api := s.API()
	chain := applyMiddleware(api, s.reduce, middlewares)
	if enhancer != nil {
		chain = enhancer(api, chain)
	}
	s.chain = chain

	return s, nil
}

// API returns the middleware view of the store.
func (s *Store[S]) API() MiddlewareAPI[S] {
	return MiddlewareAPI[S]{
		Dispatch: s.Dispatch,
		GetState: s.GetState,
	}
}

// Dispatch sends action through the middleware chain to the reducer.
//
// It returns the action when it reaches the reducer, or whatever an
// intercepting middleware returns. A panic raised by a reducer or a
// middleware propagates to the caller and leaves the state at its last
// committed value. After Close, Dispatch does nothing and returns nil.
func (s *Store[S]) Dispatch(action Action) any {
	s.mu.Lock()
	chain, closed := s.chain, s.closed
	s.mu.Unlock()

	if closed {
		s.logger.Debug("dispatch on closed store ignored", zap.String("action", action.Type))
		return nil
	}
	if chain == nil {
		// Dispatched by a middleware while the chain is still being built.
		return s.reduce(action)
	}
	return chain(action)
}

// reduce is the terminal stage of the dispatch chain.
func (s *Store[S]) reduce(action Action) any {
	sub, ok := s.commit(action)
	if !ok {
		s.logger.Debug("dispatch on closed store ignored", zap.String("action", action.Type))
		return nil
	}
	if sub != nil {
		sub.fn()
	}
	return action
}

func (s *Store[S]) commit(action Action) (*subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false
	}
	s.state = s.reducer(s.state, action)
	return s.sub, true
}

// GetState returns the committed state.
func (s *Store[S]) GetState() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every committed dispatch and
// returns a function that removes it. A store has a single subscriber slot;
// subscribing again replaces the previous callback. Unsubscribing twice, or
// after being replaced, is harmless.
func (s *Store[S]) Subscribe(fn func()) (unsubscribe func()) {
	sub := &subscription{fn: fn}

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.sub == sub {
			s.sub = nil
		}
	}
}

// Close drops the subscriber and turns further dispatches into no-ops.
func (s *Store[S]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.sub = nil
}

// Closed reports whether Close has been called.
func (s *Store[S]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
