// Package equal provides the value comparators used to decide whether a
// component's props, state or context changed between two renders.
//
// Comparison follows reference semantics for reference kinds: two maps,
// slices, pointers or channels are equal only when they share the same
// underlying storage. Functions cannot be compared in Go, so two non-nil
// functions are always unequal; a component that receives a fresh closure
// re-renders.
package equal

import (
	"math"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Func compares two values.
type Func func(a, b any) bool

// Strict reports whether a and b are identical values. Scalars compare by
// value, reference kinds by identity. NaN is not equal to itself.
func Strict(a, b any) bool {
	return compare(a, b, false)
}

// SameValueZero is Strict except that NaN equals NaN.
func SameValueZero(a, b any) bool {
	return compare(a, b, true)
}

// Shallow reports whether two maps hold the same keys with SameValueZero
// values. The same map (or two nil maps) is always shallow-equal.
func Shallow(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	if reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer() {
		return true
	}
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !SameValueZero(av, bv) {
			return false
		}
	}
	return true
}

// ShallowAny applies Shallow when both values are string-keyed maps and
// SameValueZero otherwise.
func ShallowAny(a, b any) bool {
	am, aok := asMap(a)
	bm, bok := asMap(b)
	if aok && bok {
		return Shallow(am, bm)
	}
	return SameValueZero(a, b)
}

var deepOptions = []cmp.Option{
	cmpopts.EquateNaNs(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Deep reports structural equality, descending into maps, slices and
// structs (including unexported fields).
func Deep(a, b any) bool {
	return cmp.Equal(a, b, deepOptions...)
}

func compare(a, b any, nanEqual bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return sameValue(reflect.ValueOf(a), reflect.ValueOf(b), nanEqual)
}

// sameValue walks structs, arrays and interfaces field by field and stops
// at reference kinds, which compare by identity. A struct holding a slice
// therefore equals a copy that shares the slice's backing array.
func sameValue(va, vb reflect.Value, nanEqual bool) bool {
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len()
	case reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return sameValue(va.Elem(), vb.Elem(), nanEqual)
	case reflect.Struct:
		for i := 0; i < va.NumField(); i++ {
			if !sameValue(va.Field(i), vb.Field(i), nanEqual) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < va.Len(); i++ {
			if !sameValue(va.Index(i), vb.Index(i), nanEqual) {
				return false
			}
		}
		return true
	case reflect.Float32, reflect.Float64:
		fa, fb := va.Float(), vb.Float()
		if nanEqual && math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	case reflect.Complex64, reflect.Complex128:
		return va.Complex() == vb.Complex()
	case reflect.Bool:
		return va.Bool() == vb.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return va.Int() == vb.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return va.Uint() == vb.Uint()
	case reflect.String:
		return va.String() == vb.String()
	}
	return false
}

func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.Type().ConvertibleTo(reflect.TypeOf(map[string]any(nil))) {
		return rv.Convert(reflect.TypeOf(map[string]any(nil))).Interface().(map[string]any), true
	}
	return nil, false
}
