package pspace

import (
	"fmt"
	"reflect"
	"strings"
)

// BuildAddress joins address parts into a fully-qualified address.
//
// Nil and empty parts are skipped, non-string parts are stringified with
// fmt, and '.' separators are inserted between the remaining parts. A part
// may itself be a compound address ("a.b") spanning several levels; parts
// are not checked for embedded separators, so a part that is not meant to
// be compound must not contain '.'.
func BuildAddress(parts ...any) string {
	var b strings.Builder
	for _, part := range parts {
		if part == nil {
			continue
		}
		s, ok := part.(string)
		if !ok {
			s = fmt.Sprint(part)
		}
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
	return b.String()
}

// FlattenMap converts a nested map into a flat address/value pair list.
//
// It descends while values are maps (of any key and element type) and
// treats everything else as a leaf:
//
//	 input: map[string]any{"a": 1, "b": map[string]any{"c": 2, "d": 3}}
//	output: {a 1} {b.c 2} {b.d 3}
//
// Map keys are stringified the same way BuildAddress stringifies parts.
// A non-map argument flattens to a single pair at the empty address.
// Pair order is unspecified; stores order properties by address anyway.
func FlattenMap(m any) []PropertyKV {
	var out []PropertyKV
	appendFlattened(&out, "", reflect.ValueOf(m))
	return out
}

func appendFlattened(out *[]PropertyKV, base string, rv reflect.Value) {
	if rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		var v any
		if rv.IsValid() {
			v = rv.Interface()
		}
		*out = append(*out, PropertyKV{base, v})
		return
	}
	for it := rv.MapRange(); it.Next(); {
		appendFlattened(out, BuildAddress(base, it.Key().Interface()), it.Value())
	}
}

// addrDepth returns the depth of addr below base, assuming addr is base
// itself or a strict dotted-path descendant of it.
func addrDepth(base, addr string) int {
	return strings.Count(addr, ".") - strings.Count(base, ".")
}
