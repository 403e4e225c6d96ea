package hxstore

import "errors"

// Sentinel errors for configuration and lifecycle failures.
var (
	ErrInvalidActionType = errors.New("hxstore: action type " + InitType + " is reserved for store construction")
	ErrInvalidHandlers   = errors.New("hxstore: reducer handlers must be a reducer function or a handler map")
	ErrNilReducer        = errors.New("hxstore: reducer must not be nil")
	ErrNilView           = errors.New("hxstore: view must not be nil")
	ErrUnmounted         = errors.New("hxstore: instance is unmounted")
	ErrNotFound          = errors.New("hxstore: instance not found")
	ErrUnknownAction     = errors.New("hxstore: unknown action")
	ErrInvalidToken      = errors.New("hxstore: invalid action token")
)

// IsConfigError reports whether err stems from a misconfigured action
// creator, reducer or view.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidActionType) ||
		errors.Is(err, ErrInvalidHandlers) ||
		errors.Is(err, ErrNilReducer) ||
		errors.Is(err, ErrNilView)
}

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
