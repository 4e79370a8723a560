package model

import (
	"fmt"
	"sort"
)

// ValueType tags constant pool entries.
type ValueType string

// Value types admitted into constant pools.
const (
	ValueInt    ValueType = "int"
	ValueFloat  ValueType = "float"
	ValueString ValueType = "str"
)

// ValueTypeOf classifies v. Booleans are not integers here.
func ValueTypeOf(v any) (ValueType, bool) {
	switch v.(type) {
	case int64:
		return ValueInt, true
	case float64:
		return ValueFloat, true
	case string:
		return ValueString, true
	default:
		return "", false
	}
}

// ValueSet is a set of distinct constant values.
type ValueSet map[any]struct{}

// NewValueSet builds a set from values.
func NewValueSet(values ...any) ValueSet {
	s := make(ValueSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}

	return s
}

// Sorted returns the values in ascending order. All values of one set share
// a value type, which makes the order total.
func (s ValueSet) Sorted() []any {
	out := make([]any, 0, len(s))
	for v := range s {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool { return lessValue(out[i], out[j]) })

	return out
}

func lessValue(a, b any) bool {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			return x < y
		}
	case float64:
		if y, ok := b.(float64); ok {
			return x < y
		}
	case string:
		if y, ok := b.(string); ok {
			return x < y
		}
	}

	return fmt.Sprint(a) < fmt.Sprint(b)
}
