package hxstore

// ActionCreatorSource describes how a connected view receives its action
// creators. It is implemented by ActionCreators (a static map) and
// ActionCreatorsFactory (a function of dispatch and own props).
type ActionCreatorSource interface {
	bind(dispatch Dispatch, ownProps Props) BoundActions
	dynamic() bool
}

// ActionCreators maps prop names to action creators. Each is bound so
// that calling it dispatches the action it produces.
//
//	hxstore.ActionCreators{
//	    "increment": func(...any) hxstore.Action { return hxstore.Action{Type: "INC"} },
//	    "add":       add.Func(),
//	}
type ActionCreators map[string]ActionFunc

func (ac ActionCreators) bind(dispatch Dispatch, _ Props) BoundActions {
	bound := make(BoundActions, len(ac))
	for name, create := range ac {
		if create == nil {
			continue
		}
		bound[name] = &BoundAction{
			name: name,
			fn: func(args ...any) any {
				return dispatch(create(args...))
			},
		}
	}
	return bound
}

func (ActionCreators) dynamic() bool { return false }

// BoundActionFuncs is the mapping an ActionCreatorsFactory returns.
type BoundActionFuncs map[string]func(args ...any) any

// ActionCreatorsFactory builds bound action creators from the instance's
// dispatch and own props. It is invoked again whenever own props change so
// the closures never see stale props.
type ActionCreatorsFactory func(dispatch Dispatch, ownProps Props) BoundActionFuncs

func (f ActionCreatorsFactory) bind(dispatch Dispatch, ownProps Props) BoundActions {
	funcs := f(dispatch, ownProps)
	bound := make(BoundActions, len(funcs))
	for name, fn := range funcs {
		if fn == nil {
			continue
		}
		bound[name] = &BoundAction{name: name, fn: fn}
	}
	return bound
}

func (ActionCreatorsFactory) dynamic() bool { return true }

// BoundAction is an action creator tied to one instance's dispatch. A new
// binding always yields new *BoundAction values, which is how the update
// decision notices refreshed closures.
type BoundAction struct {
	name string
	fn   func(args ...any) any
}

// Call invokes the action creator and returns the dispatch result.
// Calling a nil *BoundAction returns nil.
func (a *BoundAction) Call(args ...any) any {
	if a == nil || a.fn == nil {
		return nil
	}
	return a.fn(args...)
}

// Name returns the prop name the action was bound under.
func (a *BoundAction) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

// BoundActions maps prop names to bound action creators.
type BoundActions map[string]*BoundAction

// Props returns the bound actions as props.
func (b BoundActions) Props() Props {
	p := make(Props, len(b))
	for k, v := range b {
		p[k] = v
	}
	return p
}

// BindActionCreators binds source to dispatch.
//
// A nil source yields a single "dispatch" entry that forwards an Action
// argument to dispatch, so the view keeps raw dispatch access.
func BindActionCreators(source ActionCreatorSource, dispatch Dispatch, ownProps Props) BoundActions {
	if source == nil || isNilSource(source) {
		return BoundActions{
			"dispatch": &BoundAction{
				name: "dispatch",
				fn: func(args ...any) any {
					if len(args) == 0 {
						return nil
					}
					action, ok := args[0].(Action)
					if !ok {
						return nil
					}
					return dispatch(action)
				},
			},
		}
	}
	return source.bind(dispatch, ownProps)
}

func isNilSource(source ActionCreatorSource) bool {
	switch s := source.(type) {
	case ActionCreators:
		return s == nil
	case ActionCreatorsFactory:
		return s == nil
	}
	return false
}
