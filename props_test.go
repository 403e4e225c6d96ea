package hxstore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type todoState struct {
	Title string `msgpack:"title"`
	Done  bool   `msgpack:"done"`
}

type encodedState struct{ n int }

func (e encodedState) HXEncode() map[string]any { return map[string]any{"n": e.n} }

func TestStateProps(t *testing.T) {
	direct := Props{"a": 1}

	tests := []struct {
		name  string
		state any
		want  Props
	}{
		{"nil", nil, Props{}},
		{"props", direct, direct},
		{"map", map[string]any{"a": "b"}, Props{"a": "b"}},
		{"struct", todoState{Title: "milk"}, Props{"title": "milk", "done": false}},
		{"pointer", &todoState{Done: true}, Props{"title": "", "done": true}},
		{"encoder", encodedState{n: 3}, Props{"n": 3}},
		{"scalar", 42, Props{"state": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, StateProps(tt.state)); diff != "" {
				t.Errorf("StateProps() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultMergePropsPrecedence(t *testing.T) {
	actions := BindActionCreators(ActionCreators{
		"title": func(...any) Action { return Action{Type: "T"} },
	}, func(a Action) any { return a }, nil)

	merged := DefaultMergeProps(
		map[string]any{"title": "from state", "done": true},
		actions,
		Props{"title": "from own", "done": false, "label": "own only"},
	)

	if merged.Action("title") != actions["title"] {
		t.Error("bound actions should win over state and own props")
	}
	if !merged.Bool("done") {
		t.Error("state props should win over own props")
	}
	if merged.String("label") != "own only" {
		t.Error("own props should be kept")
	}
}

func TestDefaultMergePropsFresh(t *testing.T) {
	own := Props{"a": 1}
	merged := DefaultMergeProps[any](nil, nil, own)
	merged["b"] = 2
	if _, ok := own["b"]; ok {
		t.Error("merge should not alias own props")
	}
}

func TestPropsAccessors(t *testing.T) {
	p := Props{
		"s":   "x",
		"i":   3,
		"i64": int64(4),
		"u8":  uint8(5),
		"f":   6.0,
		"b":   true,
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"String", p.String("s"), "x"},
		{"String missing", p.String("nope"), ""},
		{"String wrong type", p.String("i"), ""},
		{"Int", p.Int("i"), 3},
		{"Int int64", p.Int("i64"), 4},
		{"Int uint8", p.Int("u8"), 5},
		{"Int float", p.Int("f"), 6},
		{"Int missing", p.Int("nope"), 0},
		{"Bool", p.Bool("b"), true},
		{"Bool missing", p.Bool("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if p.Action("s") != nil {
		t.Error("Action() on a non-action value should be nil")
	}
}

func TestPropsClone(t *testing.T) {
	var nilProps Props
	if c := nilProps.Clone(); c == nil {
		t.Error("Clone() of nil should be an empty map")
	}

	p := Props{"a": 1}
	c := p.Clone()
	c["a"] = 2
	if p["a"] != 1 {
		t.Error("Clone() should not alias")
	}
}
