// Package hxstoreecho mounts an hxstore Registry on the Echo framework.
//
//	e := echo.New()
//	reg := hxstoreecho.Mount(e)
//	inst, _ := counter.Mount(nil)
//	reg.Add(inst)
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxstoreecho.MountGroup(g, "/app")
package hxstoreecho

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pthm/hxstore"
)

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	key       []byte
	path      string
	sensitive bool
	logger    *zap.Logger
}

// WithKey sets the token key for the registry.
// The key should be at least 32 bytes of cryptographically random data.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPath sets the URL path prefix for instance routes.
// Defaults to hxstore.DefaultPrefix.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithSensitive encrypts action tokens.
func WithSensitive() Option {
	return func(o *options) {
		o.sensitive = true
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Mount creates a registry and mounts its handler on an Echo instance.
func Mount(e *echo.Echo, opts ...Option) *hxstore.Registry {
	reg := newRegistry("", opts)
	e.Any(strings.TrimSuffix(reg.Prefix(), "/")+"/*", echo.WrapHandler(reg.Handler()))
	return reg
}

// MountGroup creates a registry and mounts its handler on an Echo group,
// so instance routes share the group's middleware. groupPrefix must be the
// prefix the group was created with.
func MountGroup(g *echo.Group, groupPrefix string, opts ...Option) *hxstore.Registry {
	reg := newRegistry(groupPrefix, opts)
	path := strings.TrimPrefix(reg.Prefix(), strings.TrimSuffix(groupPrefix, "/"))
	g.Any(strings.TrimSuffix(path, "/")+"/*", echo.WrapHandler(reg.Handler()))
	return reg
}

func newRegistry(groupPrefix string, opts []Option) *hxstore.Registry {
	o := &options{path: hxstore.DefaultPrefix, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxstoreecho: failed to generate random key: %v", err))
		}
	}

	path := o.path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	regOpts := []hxstore.RegistryOption{
		hxstore.WithPrefix(strings.TrimSuffix(groupPrefix, "/") + path),
		hxstore.WithRegistryLogger(o.logger),
	}
	if o.sensitive {
		regOpts = append(regOpts, hxstore.Sensitive())
	}
	return hxstore.NewRegistry(key, regOpts...)
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxstoreecho.Render(c, hxstore.Wrap(inst))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
