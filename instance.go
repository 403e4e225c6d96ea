package hxstore

import (
	"context"
	"io"
	"sync"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/pthm/hxstore/lib/equal"
)

// Phase is an instance's position in its lifecycle.
type Phase int

const (
	PhaseUnconstructed Phase = iota
	PhaseConstructed
	PhaseMounted
	PhaseUpdating
	PhaseUnmounted
)

func (p Phase) String() string {
	switch p {
	case PhaseUnconstructed:
		return "unconstructed"
	case PhaseConstructed:
		return "constructed"
	case PhaseMounted:
		return "mounted"
	case PhaseUpdating:
		return "updating"
	case PhaseUnmounted:
		return "unmounted"
	}
	return "unknown"
}

// Instance is one mounted copy of a connected view together with the store
// it owns exclusively.
type Instance[S any] struct {
	mu          sync.Mutex
	id          string
	conn        *Connected[S]
	store       *Store[S]
	unsubscribe func()

	ownProps Props
	context  Props
	state    S
	actions  BoundActions

	merged   Props
	rendered templ.Component

	// State props cached for the last converted state.
	stateProps    Props
	statePropsFor S
	statePropsSet bool

	renders  int
	phase    Phase

	onRender func(templ.Component)
	logger   *zap.Logger
}

var _ Component = (*Instance[any])(nil)

// ID returns the instance identifier.
func (in *Instance[S]) ID() string {
	return in.id
}

// Name returns the display name of the connected view.
func (in *Instance[S]) Name() string {
	return in.conn.name
}

// Phase reports the lifecycle phase.
func (in *Instance[S]) Phase() Phase {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.phase
}

// Render returns the current output. The first call merges props and
// mounts the instance; later calls reuse the output of the last accepted
// update. The returned component renders the view lazily with the context
// it is written with.
func (in *Instance[S]) Render() templ.Component {
	in.mu.Lock()
	defer in.mu.Unlock()

	switch in.phase {
	case PhaseConstructed:
		in.renderLocked()
		in.phase = PhaseMounted
		in.logger.Debug("instance mounted")
	case PhaseUnmounted:
		if in.rendered == nil {
			return templ.NopComponent
		}
	}
	return in.rendered
}

// Props returns the merged props behind the current output, or nil before
// the first render.
func (in *Instance[S]) Props() Props {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.merged
}

// OwnProps returns the own props last offered by the host.
func (in *Instance[S]) OwnProps() Props {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.ownProps
}

// Context returns the host context last offered to the instance.
func (in *Instance[S]) Context() Props {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.context
}

// Renders returns how many times the view output was rebuilt.
func (in *Instance[S]) Renders() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.renders
}

// State returns the state snapshot behind the current props.
func (in *Instance[S]) State() S {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// Actions returns the currently bound action creators.
func (in *Instance[S]) Actions() BoundActions {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.actions
}

// Action returns a bound action creator by prop name, or nil.
func (in *Instance[S]) Action(name string) *BoundAction {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.actions[name]
}

// Dispatch sends an action to the instance's store. After Unmount it does
// nothing and returns nil.
func (in *Instance[S]) Dispatch(action Action) any {
	in.mu.Lock()
	store := in.store
	in.mu.Unlock()

	if store == nil {
		in.logger.Debug("dispatch after unmount ignored", zap.String("action", action.Type))
		return nil
	}
	return store.Dispatch(action)
}

// SetProps offers new own props. It reports whether the instance
// re-rendered.
func (in *Instance[S]) SetProps(next Props) (bool, error) {
	if next == nil {
		next = Props{}
	}
	return in.update(func() (Props, S, Props) {
		return next, in.state, in.context
	})
}

// SetContext offers a new host context. It reports whether the instance
// re-rendered.
func (in *Instance[S]) SetContext(next Props) (bool, error) {
	if next == nil {
		next = Props{}
	}
	return in.update(func() (Props, S, Props) {
		return in.ownProps, in.state, next
	})
}

// Unmount unsubscribes from the store and releases it. Bound action
// creators kept by callers become no-ops. Unmount is idempotent.
func (in *Instance[S]) Unmount() {
	in.mu.Lock()
	if in.phase == PhaseUnmounted {
		in.mu.Unlock()
		return
	}
	in.phase = PhaseUnmounted
	unsubscribe, store := in.unsubscribe, in.store
	in.unsubscribe = nil
	in.store = nil
	in.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if store != nil {
		store.Close()
	}
	in.logger.Debug("instance unmounted")
}

// handleStoreChange is the store subscriber.
func (in *Instance[S]) handleStoreChange() {
	_, _ = in.update(func() (Props, S, Props) {
		return in.ownProps, in.store.GetState(), in.context
	})
}

// update runs a candidate update. next is evaluated under the instance
// lock and returns the next own props, state and context.
func (in *Instance[S]) update(next func() (Props, S, Props)) (bool, error) {
	in.mu.Lock()

	switch in.phase {
	case PhaseUnmounted:
		in.mu.Unlock()
		return false, ErrUnmounted
	case PhaseConstructed:
		// Not rendered yet; the first Render picks up the new values.
		own, state, ctx := next()
		in.actions = in.refreshActionsLocked(own)
		in.ownProps, in.state, in.context = own, state, ctx
		in.mu.Unlock()
		return false, nil
	}

	in.phase = PhaseUpdating
	own, state, ctx := next()
	should := in.shouldUpdateLocked(own, state, ctx)
	in.ownProps, in.state, in.context = own, state, ctx
	if should {
		in.renderLocked()
	}
	in.phase = PhaseMounted
	out, hook := in.rendered, in.onRender
	in.mu.Unlock()

	if should && hook != nil {
		hook(out)
	}
	return should, nil
}

// renderLocked merges props and captures a new output.
func (in *Instance[S]) renderLocked() {
	props := in.mergeLocked(in.state, in.actions, in.ownProps)
	view := in.conn.view

	in.merged = props
	in.rendered = templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := view.Render(ctx, props)
		if out == nil {
			return nil
		}
		return out.Render(ctx, w)
	})
	in.renders++
}

// mergeLocked builds the view props with the configured merge, or the
// default merge over cached state props.
func (in *Instance[S]) mergeLocked(state S, actions BoundActions, own Props) Props {
	if merge := in.conn.opts.MergeProps; merge != nil {
		return merge(state, actions, own)
	}
	return mergeStateProps(in.statePropsLocked(state), actions, own)
}

// statePropsLocked converts state once per distinct state value. A
// reducer that returns the same state therefore produces the same nested
// maps and slices, which keeps the merged props shallow-equal.
func (in *Instance[S]) statePropsLocked(state S) Props {
	if in.statePropsSet && equal.SameValueZero(in.statePropsFor, state) {
		return in.stateProps
	}
	in.stateProps = StateProps(state)
	in.statePropsFor = state
	in.statePropsSet = true
	return in.stateProps
}
