package hxstore

import (
	"net/http"

	"github.com/a-h/templ"
	jsoniter "github.com/json-iterator/go"
)

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context:
//
//	hxstore.Render(w, r, hxstore.Wrap(inst))
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// TriggerHeader builds an HX-Trigger header value.
//
// Without data the event name is returned as-is; with data the value is
// the JSON object {"event": data}, which HTMX exposes as evt.detail.
func TriggerHeader(event string, data map[string]any) string {
	if event == "" {
		return ""
	}
	if data == nil {
		return event
	}
	out, _ := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(map[string]any{event: data})
	return out
}
