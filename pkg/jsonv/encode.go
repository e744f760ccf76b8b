// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package jsonv

import (
	"strings"

	"github.com/goccy/go-json"
)

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	var sb strings.Builder
	writeValue(&sb, v, "", "")
	return sb.String()
}

// MarshalIndent returns the JSON encoding of v with each nesting level
// indented by indent. Member order is preserved and empty containers are
// written as {} and [].
func (v Value) MarshalIndent(indent string) string {
	var sb strings.Builder
	writeValue(&sb, v, indent, "")
	return sb.String()
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func writeValue(sb *strings.Builder, v Value, indent, prefix string) {
	switch v.kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Number:
		sb.WriteString(v.s)
	case String:
		sb.WriteString(Quote(v.s))
	case Array:
		if len(v.items) == 0 {
			sb.WriteString("[]")
			return
		}
		inner := prefix + indent
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			newline(sb, indent, inner)
			writeValue(sb, item, indent, inner)
		}
		newline(sb, indent, prefix)
		sb.WriteByte(']')
	case Object:
		if len(v.members) == 0 {
			sb.WriteString("{}")
			return
		}
		inner := prefix + indent
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			newline(sb, indent, inner)
			sb.WriteString(Quote(m.Key))
			sb.WriteByte(':')
			if indent != "" {
				sb.WriteByte(' ')
			}
			writeValue(sb, m.Value, indent, inner)
		}
		newline(sb, indent, prefix)
		sb.WriteByte('}')
	}
}

func newline(sb *strings.Builder, indent, prefix string) {
	if indent == "" {
		return
	}
	sb.WriteByte('\n')
	sb.WriteString(prefix)
}

// Quote returns s as a JSON string literal. HTML-sensitive characters are not
// escaped; the output is meant for humans and for the highlighter.
func Quote(s string) string {
	b, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		// Strings always encode; keep a usable literal regardless.
		return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
	}
	return string(b)
}
