// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package jsonv

import (
	stdjson "encoding/json"
	"fmt"

	"github.com/goccy/go-json"
)

// FromAny converts a Go value into a Value. Values that are already a Value
// are returned as-is; anything else goes through a JSON round trip, so map
// keys come out sorted.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return NullValue(), nil
		}
		return *t, nil
	case nil:
		return NullValue(), nil
	}
	data, err := json.Marshal(x)
	if err != nil {
		return Value{}, fmt.Errorf("value of type %T is not JSON-serialisable: %w", x, err)
	}
	return Parse(data)
}

// ToAny converts v into the generic representation produced by
// encoding/json with UseNumber: map[string]any, []any, json.Number, string,
// bool and nil. Member order is lost.
func (v Value) ToAny() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return stdjson.Number(v.s)
	case String:
		return v.s
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.ToAny()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.ToAny()
		}
		return out
	default:
		return nil
	}
}
