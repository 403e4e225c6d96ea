package hxstore

import "fmt"

// Action describes an intended state transition.
//
// A nil Payload or Meta means the field is absent.
type Action struct {
	Type    string
	Payload any
	Meta    any
	IsError bool
}

// InitType is the type of the action a store hands its reducer on
// construction. Action creators cannot produce it.
const InitType = "@@hxstore/INIT"

// IsBootstrap reports whether a is the construction-time action.
func (a Action) IsBootstrap() bool {
	return a.Type == InitType
}

func (a Action) String() string {
	if a.Payload == nil {
		return a.Type
	}
	return fmt.Sprintf("%s(%v)", a.Type, a.Payload)
}

// ActionFunc produces an action from call arguments.
type ActionFunc func(args ...any) Action

// PayloadFunc derives an action payload from call arguments. Returning nil
// omits the payload.
type PayloadFunc func(args ...any) any

// MetaFunc derives action metadata from call arguments. Returning nil
// omits the meta field.
type MetaFunc func(args ...any) any

// ActionCreator builds actions of a single type.
//
//	increment := hxstore.MustActionCreator("INC", nil, nil)
//	increment.Create(5) // Action{Type: "INC", Payload: 5}
//
// Its String method yields the action type, so a creator can key a
// handler map:
//
//	hxstore.Handlers[State]{increment.String(): onIncrement}
type ActionCreator struct {
	actionType string
	payload    PayloadFunc
	meta       MetaFunc
}

// NewActionCreator returns a creator for actionType, which may be any
// string except InitType. A nil payload handler uses the first call
// argument as payload; a nil meta handler sets no meta.
func NewActionCreator(actionType string, payload PayloadFunc, meta MetaFunc) (*ActionCreator, error) {
	if actionType == InitType {
		return nil, ErrInvalidActionType
	}
	if payload == nil {
		payload = firstArg
	}
	if meta == nil {
		meta = noMeta
	}
	return &ActionCreator{
		actionType: actionType,
		payload:    payload,
		meta:       meta,
	}, nil
}

// MustActionCreator is like NewActionCreator but panics on error.
func MustActionCreator(actionType string, payload PayloadFunc, meta MetaFunc) *ActionCreator {
	ac, err := NewActionCreator(actionType, payload, meta)
	if err != nil {
		panic(err)
	}
	return ac
}

// Create builds an action from args.
func (ac *ActionCreator) Create(args ...any) Action {
	action := Action{Type: ac.actionType}

	if payload := ac.payload(args...); payload != nil {
		action.Payload = payload
		if _, ok := payload.(error); ok {
			action.IsError = true
		}
	}

	if meta := ac.meta(args...); meta != nil {
		action.Meta = meta
	}

	return action
}

// Func returns Create as an ActionFunc for use in an ActionCreators map.
func (ac *ActionCreator) Func() ActionFunc {
	return ac.Create
}

// Type returns the action type.
func (ac *ActionCreator) Type() string {
	return ac.actionType
}

func (ac *ActionCreator) String() string {
	return ac.actionType
}

func firstArg(args ...any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

func noMeta(...any) any {
	return nil
}
