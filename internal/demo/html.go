package demo

import (
	"io"
	"maps"
	"slices"

	"github.com/a-h/templ"
)

// htmlWriter writes escaped markup and keeps the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes a start tag with attributes in key order.
func (h *htmlWriter) open(tag string, attrs templ.Attributes) {
	h.raw("<" + tag)
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				h.raw(" " + k)
			}
		case string:
			h.raw(" " + k + `="` + templ.EscapeString(v) + `"`)
		}
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

// button writes a button carrying attrs, or records err.
func (h *htmlWriter) button(label string, attrs templ.Attributes, err error) {
	if err != nil {
		if h.err == nil {
			h.err = err
		}
		return
	}
	h.open("button", attrs)
	h.text(label)
	h.close("button")
}
