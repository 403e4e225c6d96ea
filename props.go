package hxstore

import (
	"maps"

	"github.com/pthm/hxstore/lib/encoding"
)

// Props is the key/value bag handed to a view: own props from the parent,
// state props from the store and bound action creators.
type Props map[string]any

// Clone returns a shallow copy of p.
func (p Props) Clone() Props {
	if p == nil {
		return Props{}
	}
	return maps.Clone(p)
}

// String returns the string stored under key, or "".
func (p Props) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Int returns the integer stored under key, or 0. Any integer kind is
// accepted so values converted through msgpack read back naturally.
func (p Props) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Bool returns the bool stored under key, or false.
func (p Props) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Action returns the bound action creator stored under key, or nil.
// Calling a nil *BoundAction is a no-op.
func (p Props) Action(key string) *BoundAction {
	a, _ := p[key].(*BoundAction)
	return a
}

// PropsEncoder is implemented by state types that expose themselves as
// props without a msgpack round trip.
type PropsEncoder = encoding.Encodable

// StateProps converts a store state into props.
//
// Props and map[string]any states are used directly, PropsEncoder states
// supply their own map, and structs are flattened through msgpack. Any
// other state is exposed under the "state" key.
func StateProps(state any) Props {
	switch s := state.(type) {
	case nil:
		return Props{}
	case Props:
		return s
	}

	m, err := encoding.ToProps(state)
	if err != nil {
		return Props{"state": state}
	}
	return Props(m)
}

// DefaultMergeProps merges own props, then state props, then bound action
// creators into a fresh map; later sources win on key collisions.
func DefaultMergeProps[S any](state S, actions BoundActions, ownProps Props) Props {
	return mergeStateProps(StateProps(state), actions, ownProps)
}

func mergeStateProps(stateProps Props, actions BoundActions, ownProps Props) Props {
	merged := make(Props, len(ownProps)+len(stateProps)+len(actions))
	for k, v := range ownProps {
		merged[k] = v
	}
	for k, v := range stateProps {
		merged[k] = v
	}
	for k, v := range actions {
		merged[k] = v
	}
	return merged
}
