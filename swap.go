package hxstore

// SwapMode defines HTMX swap strategies for how a re-rendered instance
// replaces its element.
//
// See https://htmx.org/attributes/hx-swap/ for visual examples.
type SwapMode string

const (
	// SwapOuter replaces the wrapper element including its tag (outerHTML).
	// Registry action attributes use this mode so the fresh wrapper keeps
	// its id.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the element's contents (innerHTML).
	SwapInner SwapMode = "innerHTML"

	// SwapDelete removes the target element entirely.
	// Used by UnmountAttrs.
	SwapDelete SwapMode = "delete"

	// SwapNone discards the response.
	SwapNone SwapMode = "none"
)

// WithSwap returns a copy of attrs using mode for hx-swap.
//
//	attrs, _ := reg.ActionAttrs(inst, "log")
//	attrs = hxstore.WithSwap(attrs, hxstore.SwapNone)
func WithSwap(attrs map[string]any, mode SwapMode) map[string]any {
	out := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		out[k] = v
	}
	out["hx-swap"] = string(mode)
	return out
}
