package encoding

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testToken implements Encodable and Decodable for testing.
type testToken struct {
	Instance string
	Action   string
	Count    int64
}

func (p testToken) HXEncode() map[string]any {
	return map[string]any{
		"i": p.Instance,
		"a": p.Action,
		"n": p.Count,
	}
}

func (p *testToken) HXDecode(m map[string]any) error {
	if v, ok := m["i"].(string); ok {
		p.Instance = v
	}
	if v, ok := m["a"].(string); ok {
		p.Action = v
	}
	if v, ok := m["n"].(int64); ok {
		p.Count = v
	}
	return nil
}

// plainArgs relies on msgpack struct encoding.
type plainArgs struct {
	Action string `msgpack:"a"`
	Args   []any  `msgpack:"args"`
}

func TestNewEncoder(t *testing.T) {
	if _, err := NewEncoder([]byte("short")); err != nil {
		t.Fatalf("NewEncoder with short key failed: %v", err)
	}
	if _, err := NewEncoder([]byte("this-is-a-key-that-is-longer-than-32-bytes")); err != nil {
		t.Fatalf("NewEncoder with long key failed: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	original := testToken{Instance: "abc", Action: "increment", Count: 3}

	for _, sensitive := range []bool{false, true} {
		encoded, err := enc.Encode(original, sensitive)
		if err != nil {
			t.Fatalf("Encode(sensitive=%v) failed: %v", sensitive, err)
		}

		var decoded testToken
		if err := enc.Decode(encoded, sensitive, &decoded); err != nil {
			t.Fatalf("Decode(sensitive=%v) failed: %v", sensitive, err)
		}
		if decoded != original {
			t.Errorf("sensitive=%v: got %+v, want %+v", sensitive, decoded, original)
		}
	}
}

func TestPlainStructRoundTrip(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(plainArgs{Action: "add", Args: []any{"milk", int64(2)}}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded plainArgs
	if err := enc.Decode(encoded, false, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Action != "add" || len(decoded.Args) != 2 || decoded.Args[0] != "milk" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestSignatureVerificationFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(testToken{Instance: "abc"}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := encoded[:len(encoded)-2] + "XX"

	var decoded testToken
	err = enc.Decode(tampered, false, &decoded)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Expected ErrSignatureInvalid, got: %v", err)
	}
}

func TestDecryptionFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(testToken{Instance: "abc"}, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := encoded[:len(encoded)-2] + "XX"

	var decoded testToken
	if err := enc.Decode(tampered, true, &decoded); err == nil {
		t.Error("Expected error for tampered ciphertext, got nil")
	}
}

func TestInvalidFormat(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	var decoded testToken
	err := enc.Decode("invalidbase64withoutseparator", false, &decoded)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got: %v", err)
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	enc1, _ := NewEncoder([]byte("key-one"))
	enc2, _ := NewEncoder([]byte("key-two"))

	encoded, err := enc1.Encode(testToken{Instance: "abc"}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded testToken
	if err := enc2.Decode(encoded, false, &decoded); err == nil {
		t.Error("Expected error when decoding with different key")
	}
}

type counterState struct {
	Count int
	Label string `msgpack:"label"`
	Tags  []string
}

func TestToProps(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    map[string]any
		wantErr bool
	}{
		{
			name: "map passes through",
			in:   map[string]any{"count": 1},
			want: map[string]any{"count": 1},
		},
		{
			name: "encodable",
			in:   testToken{Instance: "x", Action: "y", Count: 2},
			want: map[string]any{"i": "x", "a": "y", "n": int64(2)},
		},
		{
			name: "struct",
			in:   counterState{Count: 3, Label: "clicks", Tags: []string{"a"}},
			want: map[string]any{"Count": int64(3), "label": "clicks", "Tags": []any{"a"}},
		},
		{
			name: "struct pointer",
			in:   &counterState{Count: 1},
			want: map[string]any{"Count": int64(1), "label": "", "Tags": nil},
		},
		{name: "scalar", in: 42, wantErr: true},
		{name: "nil", in: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToProps(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrNotAMap) {
					t.Fatalf("ToProps() error = %v, want ErrNotAMap", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToProps() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToProps() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
