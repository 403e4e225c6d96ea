package hxstore

import "github.com/pthm/hxstore/lib/equal"

// ShouldUpdate decides whether moving to the given own props, state and
// context requires a new render.
//
// Factory-bound action creators are rebound first when the instance is not
// pure or its own props changed, and the fresh binding is kept on the
// instance. A non-pure instance always updates. Otherwise the instance
// updates when own props, state, context or the merged props differ.
func (in *Instance[S]) ShouldUpdate(nextOwnProps Props, nextState S, nextContext Props) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.shouldUpdateLocked(nextOwnProps, nextState, nextContext)
}

func (in *Instance[S]) shouldUpdateLocked(nextOwn Props, nextState S, nextCtx Props) bool {
	opts := in.conn.opts

	prevActions := in.actions
	in.actions = in.refreshActionsLocked(nextOwn)

	if !opts.Pure {
		return true
	}

	return !opts.AreOwnPropsEqual(in.ownProps, nextOwn) ||
		!opts.AreStatesEqual(in.state, nextState) ||
		!equal.Shallow(in.context, nextCtx) ||
		!opts.AreMergedPropsEqual(
			in.mergeLocked(in.state, prevActions, in.ownProps),
			in.mergeLocked(nextState, in.actions, nextOwn),
		)
}

// refreshActionsLocked returns the bound actions to use with nextOwn,
// rebinding a factory source when required.
func (in *Instance[S]) refreshActionsLocked(nextOwn Props) BoundActions {
	src := in.conn.source
	if src == nil || isNilSource(src) || !src.dynamic() || in.store == nil {
		return in.actions
	}

	opts := in.conn.opts
	if opts.Pure && opts.AreOwnPropsEqual(in.ownProps, nextOwn) {
		return in.actions
	}
	return BindActionCreators(src, in.store.Dispatch, nextOwn)
}
