// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package jsonv

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
)

// ParsePointer splits an RFC 6901 JSON pointer into unescaped reference
// tokens. The empty pointer refers to the whole document.
func ParsePointer(p string) ([]string, error) {
	if p == "" {
		return nil, nil
	}
	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("invalid JSON pointer %q: must start with '/'", p)
	}
	parts := strings.Split(p[1:], "/")
	for i, part := range parts {
		parts[i] = pointerUnescaper.Replace(part)
	}
	return parts, nil
}

// FormatPointer joins reference tokens into an RFC 6901 JSON pointer.
func FormatPointer(tokens []string) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteByte('/')
		sb.WriteString(pointerEscaper.Replace(t))
	}
	return sb.String()
}

// At returns the value referenced by tokens.
func (v Value) At(tokens []string) (Value, bool) {
	cur := v
	for _, t := range tokens {
		switch cur.kind {
		case Object:
			next, ok := cur.Lookup(t)
			if !ok {
				return Value{}, false
			}
			cur = next
		case Array:
			i, err := strconv.Atoi(t)
			if err != nil {
				return Value{}, false
			}
			next, ok := cur.Index(i)
			if !ok {
				return Value{}, false
			}
			cur = next
		default:
			return Value{}, false
		}
	}
	return cur, true
}

// SetAt returns a copy of v with the value referenced by tokens replaced by
// nv. A missing final object member is appended; every intermediate token
// must already exist.
func (v Value) SetAt(tokens []string, nv Value) (Value, error) {
	if len(tokens) == 0 {
		return nv, nil
	}
	head, rest := tokens[0], tokens[1:]
	switch v.kind {
	case Object:
		child, ok := v.Lookup(head)
		if !ok && len(rest) > 0 {
			return Value{}, fmt.Errorf("no member %q", head)
		}
		updated, err := child.SetAt(rest, nv)
		if err != nil {
			return Value{}, err
		}
		return v.With(head, updated), nil
	case Array:
		i, err := strconv.Atoi(head)
		if err != nil {
			return Value{}, fmt.Errorf("invalid array index %q", head)
		}
		child, ok := v.Index(i)
		if !ok {
			return Value{}, fmt.Errorf("array index %d out of range", i)
		}
		updated, err := child.SetAt(rest, nv)
		if err != nil {
			return Value{}, err
		}
		return v.WithIndex(i, updated), nil
	default:
		return Value{}, fmt.Errorf("cannot descend into %s with %q", v.kind, head)
	}
}
