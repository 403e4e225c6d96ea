package hxstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewActionCreatorReservedType(t *testing.T) {
	ac, err := NewActionCreator(InitType, nil, nil)
	if !errors.Is(err, ErrInvalidActionType) {
		t.Fatalf("NewActionCreator(InitType) error = %v, want ErrInvalidActionType", err)
	}
	if ac != nil {
		t.Error("NewActionCreator(InitType) returned a creator")
	}
	if !IsConfigError(err) {
		t.Error("IsConfigError() = false for ErrInvalidActionType")
	}
}

func TestMustActionCreatorPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrInvalidActionType {
			t.Errorf("recover() = %v, want ErrInvalidActionType", r)
		}
	}()
	MustActionCreator(InitType, nil, nil)
}

func TestNewActionCreatorEmptyType(t *testing.T) {
	ac, err := NewActionCreator("", nil, nil)
	if err != nil {
		t.Fatalf("NewActionCreator(\"\") error = %v", err)
	}
	if got := ac.Create(1); got.Type != "" || got.Payload != 1 || got.IsBootstrap() {
		t.Errorf("Create(1) = %+v", got)
	}
}

func TestActionCreatorCreate(t *testing.T) {
	boom := errors.New("x")

	tests := []struct {
		name    string
		payload PayloadFunc
		meta    MetaFunc
		args    []any
		want    Action
	}{
		{
			name: "first argument is the payload",
			args: []any{5, "ignored"},
			want: Action{Type: "INC", Payload: 5},
		},
		{
			name: "nil payload is omitted",
			args: []any{nil},
			want: Action{Type: "INC"},
		},
		{
			name: "no arguments",
			want: Action{Type: "INC"},
		},
		{
			name: "error payload sets IsError",
			args: []any{boom},
			want: Action{Type: "INC", Payload: boom, IsError: true},
		},
		{
			name:    "custom payload handler",
			payload: func(args ...any) any { return fmt.Sprint(args...) },
			args:    []any{"a", "b"},
			want:    Action{Type: "INC", Payload: "ab"},
		},
		{
			name:    "payload handler returning nil",
			payload: func(...any) any { return nil },
			args:    []any{boom},
			want:    Action{Type: "INC"},
		},
		{
			name: "meta handler",
			meta: func(args ...any) any { return len(args) },
			args: []any{1, 2},
			want: Action{Type: "INC", Payload: 1, Meta: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac, err := NewActionCreator("INC", tt.payload, tt.meta)
			if err != nil {
				t.Fatalf("NewActionCreator() error = %v", err)
			}
			got := ac.Create(tt.args...)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("Create() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestActionCreatorString(t *testing.T) {
	ac := MustActionCreator("FAIL", nil, nil)

	if ac.String() != "FAIL" {
		t.Errorf("String() = %q, want %q", ac.String(), "FAIL")
	}
	if fmt.Sprint(ac) != "FAIL" {
		t.Errorf("fmt.Sprint() = %q, want %q", fmt.Sprint(ac), "FAIL")
	}
	if ac.Type() != "FAIL" {
		t.Errorf("Type() = %q, want %q", ac.Type(), "FAIL")
	}

	handlers := Handlers[int]{ac.String(): func(s int, _ Action) int { return s - 1 }}
	if _, ok := handlers["FAIL"]; !ok {
		t.Error("creator string should key a handler map")
	}
}

func TestActionCreatorFunc(t *testing.T) {
	fn := MustActionCreator("ADD", nil, nil).Func()
	if got := fn(3); got.Type != "ADD" || got.Payload != 3 {
		t.Errorf("Func()(3) = %+v", got)
	}
}

func TestActionIsBootstrap(t *testing.T) {
	if !(Action{Type: InitType}).IsBootstrap() {
		t.Error("InitType action should be the bootstrap action")
	}
	if (Action{}).IsBootstrap() {
		t.Error("zero Action reported as bootstrap")
	}
	if (Action{Type: "INC"}).IsBootstrap() {
		t.Error("typed action reported as bootstrap")
	}
	if (Action{Payload: 1}).IsBootstrap() {
		t.Error("action with payload reported as bootstrap")
	}
}
