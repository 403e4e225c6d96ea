// Package encoding converts component values into their wire and props
// forms using msgpack.
package encoding

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotAMap is returned by ToProps when a value does not encode to a map.
var ErrNotAMap = errors.New("encoding: value does not encode to a map")

// ToProps flattens v into a string-keyed map.
//
// Maps are copied as-is, Encodable values supply their own map, and any
// other value is round-tripped through msgpack. Struct fields are keyed by
// their msgpack tag (or field name); integers come back as int64 or uint64
// and floats as float64.
func ToProps(v any) (map[string]any, error) {
	switch m := v.(type) {
	case nil:
		return nil, ErrNotAMap
	case map[string]any:
		return m, nil
	case Encodable:
		return m.HXEncode(), nil
	}

	packed, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding: marshal %T: %w", v, err)
	}

	out, err := unmarshalMap(packed)
	if err != nil {
		return nil, fmt.Errorf("%w: %T", ErrNotAMap, v)
	}
	return out, nil
}

func unmarshalMap(packed []byte) (map[string]any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(packed))
	dec.UseLooseInterfaceDecoding(true)

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
