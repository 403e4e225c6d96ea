package hxstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/a-h/templ"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/pthm/hxstore/lib/encoding"
)

// DefaultPrefix is where a registry's handler expects to be mounted.
const DefaultPrefix = "/_s/"

// EventDispatched is the HX-Trigger event sent after an action request.
const EventDispatched = "hxstore:dispatched"

// Registry serves mounted instances over HTTP so an HTMX page can invoke
// their bound action creators and swap in the re-rendered output.
//
//	reg := hxstore.NewRegistry(key)
//	inst, _ := counter.Mount(nil)
//	reg.Add(inst)
//	http.Handle(hxstore.DefaultPrefix, reg.Handler())
//
// Routes, relative to the prefix:
//
//	GET    {id}           render the instance
//	POST   {id}/{action}  call a bound action creator, then render
//	DELETE {id}           unmount and forget the instance
//
// Action arguments travel in a signed token built by ActionAttrs, so
// clients can repeat an action but not forge its arguments.
type Registry struct {
	mu        sync.RWMutex
	mux       *http.ServeMux
	prefix    string
	sensitive bool
	encoder   *encoding.Encoder
	instances map[string]Component
	logger    *zap.Logger

	// OnError is called when a request cannot be served.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// RegistryOption configures NewRegistry.
type RegistryOption func(*Registry)

// WithPrefix sets the URL prefix the handler is mounted at.
// Defaults to "/_s/".
func WithPrefix(prefix string) RegistryOption {
	return func(reg *Registry) {
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		reg.prefix = prefix
	}
}

// WithRegistryLogger sets the registry logger.
func WithRegistryLogger(logger *zap.Logger) RegistryOption {
	return func(reg *Registry) {
		if logger != nil {
			reg.logger = logger
		}
	}
}

// Sensitive encrypts action tokens instead of signing them.
func Sensitive() RegistryOption {
	return func(reg *Registry) {
		reg.sensitive = true
	}
}

// NewRegistry creates a registry whose action tokens are protected with key.
func NewRegistry(key []byte, opts ...RegistryOption) *Registry {
	enc, err := encoding.NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxstore: failed to create encoder: %v", err))
	}

	reg := &Registry{
		prefix:    DefaultPrefix,
		encoder:   enc,
		instances: make(map[string]Component),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(reg)
	}

	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case IsNotFound(err), errors.Is(err, ErrUnknownAction):
			http.Error(w, "Not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidToken):
			http.Error(w, "Bad request", http.StatusBadRequest)
		case errors.Is(err, ErrUnmounted):
			http.Error(w, "Gone", http.StatusGone)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}

	reg.mux = http.NewServeMux()
	reg.mux.HandleFunc("GET "+reg.prefix+"{id}", reg.handleRender)
	reg.mux.HandleFunc("POST "+reg.prefix+"{id}/{action}", reg.handleAction)
	reg.mux.HandleFunc("DELETE "+reg.prefix+"{id}", reg.handleUnmount)

	return reg
}

// Prefix returns the URL prefix.
func (reg *Registry) Prefix() string {
	return reg.prefix
}

// Add registers instances. Panics on an ID collision.
func (reg *Registry) Add(components ...Component) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, c := range components {
		if _, exists := reg.instances[c.ID()]; exists {
			panic(fmt.Sprintf("hxstore: instance collision for %q", c.ID()))
		}
		reg.instances[c.ID()] = c
	}
}

// Get returns a registered instance.
func (reg *Registry) Get(id string) (Component, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	c, ok := reg.instances[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, nil
}

// Remove unmounts and forgets an instance.
func (reg *Registry) Remove(id string) error {
	reg.mu.Lock()
	c, ok := reg.instances[id]
	delete(reg.instances, id)
	reg.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.Unmount()
	return nil
}

// Len returns the number of registered instances.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.instances)
}

// Close unmounts every registered instance.
func (reg *Registry) Close() {
	reg.mu.Lock()
	instances := reg.instances
	reg.instances = make(map[string]Component)
	reg.mu.Unlock()

	for _, c := range instances {
		c.Unmount()
	}
}

// Handler returns the HTTP handler for instance routes.
// Mount it at the registry prefix.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require HX-Request header
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !IsHTMX(r) {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}

		reg.mux.ServeHTTP(w, r)
	})
}

// actionToken is the signed payload carried in hx-vals.
type actionToken struct {
	Instance string `msgpack:"i"`
	Action   string `msgpack:"a"`
	Args     []any  `msgpack:"g,omitempty"`
}

// ActionAttrs returns the HTMX attributes that invoke a bound action of c
// with args and swap the instance's wrapper element with the response.
//
//	<button { reg.ActionAttrs(inst, "increment")... }>+</button>
//
// Args must be msgpack-serializable.
func (reg *Registry) ActionAttrs(c Component, action string, args ...any) (templ.Attributes, error) {
	return reg.ActionAttrsFor(c.ID(), action, args...)
}

// ActionAttrsFor is ActionAttrs for an instance known only by ID, as seen
// from inside its own view.
func (reg *Registry) ActionAttrsFor(id, action string, args ...any) (templ.Attributes, error) {
	token, err := reg.encoder.Encode(actionToken{Instance: id, Action: action, Args: args}, reg.sensitive)
	if err != nil {
		return nil, fmt.Errorf("hxstore: encode action token: %w", err)
	}
	vals, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(map[string]string{"t": token})
	if err != nil {
		return nil, err
	}

	return templ.Attributes{
		"hx-post":   reg.prefix + id + "/" + action,
		"hx-vals":   vals,
		"hx-target": "#" + domID(id),
		"hx-swap":   string(SwapOuter),
	}, nil
}

// RefreshAttrs returns the HTMX attributes that re-render c.
func (reg *Registry) RefreshAttrs(c Component) templ.Attributes {
	return templ.Attributes{
		"hx-get":    reg.prefix + c.ID(),
		"hx-target": "#" + DOMID(c),
		"hx-swap":   string(SwapOuter),
	}
}

// UnmountAttrs returns the HTMX attributes that unmount c and remove its
// element.
func (reg *Registry) UnmountAttrs(c Component) templ.Attributes {
	return templ.Attributes{
		"hx-delete": reg.prefix + c.ID(),
		"hx-target": "#" + DOMID(c),
		"hx-swap":   string(SwapDelete),
	}
}

// DOMID returns the id of the element Wrap renders around c.
func DOMID(c Component) string {
	return domID(c.ID())
}

func domID(id string) string {
	return "hxs-" + id
}

// Wrap renders c inside the element targeted by the registry attributes.
func Wrap(c Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+templ.EscapeString(DOMID(c))+`">`); err != nil {
			return err
		}
		if err := c.Render().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func (reg *Registry) handleRender(w http.ResponseWriter, r *http.Request) {
	c, err := reg.Get(r.PathValue("id"))
	if err != nil {
		reg.fail(w, r, err)
		return
	}
	if c.Phase() == PhaseUnmounted {
		reg.fail(w, r, ErrUnmounted)
		return
	}
	reg.write(w, r, c)
}

func (reg *Registry) handleAction(w http.ResponseWriter, r *http.Request) {
	id, name := r.PathValue("id"), r.PathValue("action")

	c, err := reg.Get(id)
	if err != nil {
		reg.fail(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		reg.fail(w, r, fmt.Errorf("%w: %v", ErrInvalidToken, err))
		return
	}

	var token actionToken
	if err := reg.encoder.Decode(r.PostForm.Get("t"), reg.sensitive, &token); err != nil {
		reg.fail(w, r, fmt.Errorf("%w: %v", ErrInvalidToken, err))
		return
	}
	if token.Instance != id || token.Action != name {
		reg.fail(w, r, fmt.Errorf("%w: token issued for %s/%s", ErrInvalidToken, token.Instance, token.Action))
		return
	}

	if c.Phase() == PhaseUnmounted {
		reg.fail(w, r, ErrUnmounted)
		return
	}

	action := c.Action(name)
	if action == nil {
		reg.fail(w, r, fmt.Errorf("%w: %s", ErrUnknownAction, name))
		return
	}

	args := token.Args
	if fields := formFields(r); len(fields) > 0 {
		args = append(args, fields)
	}

	result := action.Call(args...)
	if err, ok := result.(error); ok {
		reg.fail(w, r, err)
		return
	}

	reg.logger.Debug("action served", zap.String("instance", id), zap.String("action", name))

	w.Header().Set("HX-Trigger", TriggerHeader(EventDispatched, map[string]any{"id": id, "action": name}))
	reg.write(w, r, c)
}

func (reg *Registry) handleUnmount(w http.ResponseWriter, r *http.Request) {
	if err := reg.Remove(r.PathValue("id")); err != nil {
		reg.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (reg *Registry) write(w http.ResponseWriter, r *http.Request, c Component) {
	if err := Render(w, r, Wrap(c)); err != nil {
		reg.logger.Warn("render failed", zap.String("instance", c.ID()), zap.Error(err))
	}
}

func (reg *Registry) fail(w http.ResponseWriter, r *http.Request, err error) {
	reg.logger.Info("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	reg.OnError(w, r, err)
}

// formFields collects posted fields other than the token.
func formFields(r *http.Request) Props {
	var fields Props
	for k, vs := range r.PostForm {
		if k == "t" || len(vs) == 0 {
			continue
		}
		if fields == nil {
			fields = Props{}
		}
		fields[k] = vs[0]
	}
	return fields
}
