package hxstore

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/a-h/templ"
	jsoniter "github.com/json-iterator/go"
)

// TestResult holds the result of rendering an instance for testing.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
}

// TestRender renders the current output of c and returns it as testable
// output. The first call mounts the instance.
//
//	inst, _ := counter.Mount(nil)
//	result, err := hxstore.TestRender(inst)
//	if !result.HTMLContains("count: 0") { ... }
func TestRender(c Component) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), c)
}

// TestRenderWithContext renders c with a custom context, for views that
// read request-scoped values.
func TestRenderWithContext(ctx context.Context, c Component) (*TestResult, error) {
	var buf bytes.Buffer
	if err := c.Render().Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction sends an action request for c through the registry handler,
// the way an HTMX button built with ActionAttrs would.
//
//	result, err := hxstore.TestAction(reg, inst, "increment")
//	if !result.HasEvent(hxstore.EventDispatched) { ... }
//
// c must already be registered.
func TestAction(reg *Registry, c Component, action string, args ...any) (*TestResult, error) {
	attrs, err := reg.ActionAttrs(c, action, args...)
	if err != nil {
		return nil, err
	}
	token, err := tokenFromVals(attrs["hx-vals"].(string))
	if err != nil {
		return nil, err
	}

	return NewTestRequest(http.MethodPost, attrs["hx-post"].(string)).
		WithFormData("t", token).
		Execute(reg)
}

// TestRequestBuilder provides a fluent interface for building test requests.
//
//	result, err := hxstore.NewTestRequest("POST", path).
//	    WithFormData("t", token).
//	    WithFormData("title", "milk").
//	    Execute(reg)
type TestRequestBuilder struct {
	method   string
	url      string
	formData url.Values
	headers  map[string]string
	ctx      context.Context
}

// NewTestRequest creates a new test request builder. The HX-Request header
// is set by default.
func NewTestRequest(method, url string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:   method,
		url:      url,
		formData: make(map[string][]string),
		headers:  map[string]string{"HX-Request": "true"},
		ctx:      context.Background(),
	}
}

// WithFormData adds form data to the request.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.formData.Set(key, value)
	return b
}

// WithHeader sets a request header. An empty value removes it.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	if value == "" {
		delete(b.headers, key)
		return b
	}
	b.headers[key] = value
	return b
}

// WithContext sets the context for the request.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Execute runs the request against the registry handler.
func (b *TestRequestBuilder) Execute(reg *Registry) (*TestResult, error) {
	req := httptest.NewRequest(b.method, b.url, strings.NewReader(b.formData.Encode()))
	req = req.WithContext(b.ctx)

	if len(b.formData) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, req)

	result := &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
	if trigger := rec.Header().Get("HX-Trigger"); trigger != "" {
		result.TriggeredEvents = parseTriggerHeader(trigger)
	}
	return result, nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent checks if an event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// RenderRecorder collects the outputs passed to an OnRender hook.
//
//	rec := &hxstore.RenderRecorder{}
//	inst, _ := counter.Mount(nil, hxstore.OnRender(rec.Record))
type RenderRecorder struct {
	mu      sync.Mutex
	outputs []templ.Component
}

// Record is an OnRender hook.
func (r *RenderRecorder) Record(out templ.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs = append(r.outputs, out)
}

// Count returns how many renders were recorded.
func (r *RenderRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.outputs)
}

// Last returns the most recent output, or nil.
func (r *RenderRecorder) Last() templ.Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.outputs) == 0 {
		return nil
	}
	return r.outputs[len(r.outputs)-1]
}

func tokenFromVals(vals string) (string, error) {
	var m map[string]string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(vals), &m); err != nil {
		return "", err
	}
	return m["t"], nil
}

// parseTriggerHeader parses the HX-Trigger header value into event names.
// The header can be a simple event name, a comma-separated list or a JSON
// object keyed by event.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}

	if strings.HasPrefix(trigger, "{") {
		var m map[string]any
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(trigger), &m); err != nil {
			return nil
		}
		events := make([]string, 0, len(m))
		for k := range m {
			events = append(events, k)
		}
		return events
	}

	parts := strings.Split(trigger, ",")
	events := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			events = append(events, p)
		}
	}
	return events
}
