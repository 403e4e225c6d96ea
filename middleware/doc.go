// Package middleware provides ready-made dispatch interceptors for
// hxstore stores.
//
// Each constructor returns an hxstore.Middleware[S] for the store's state
// type and is installed with hxstore.WithMiddleware:
//
//	counter := hxstore.Connect(reducer, creators,
//	    hxstore.WithMiddleware(
//	        middleware.Logger[State](logger, zapcore.DebugLevel),
//	        middleware.Thunk[State](),
//	    ),
//	)(view)
//
// Middlewares run in declaration order; put Thunk before any middleware
// that should only see plain actions.
package middleware
