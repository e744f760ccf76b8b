// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package validator

import (
	"github.com/api2spec/schemareport/internal/openapi"
	"github.com/api2spec/schemareport/pkg/jsonv"
)

// nullableKeywords maps a document kind to the keyword marking a schema as
// accepting null. Draft 4 has no such keyword, so those schemas get "null"
// added to their type instead.
var nullableKeywords = map[openapi.DocumentKind]string{
	openapi.KindOpenAPI30: "nullable",
	openapi.KindSwagger2:  "x-nullable",
}

// allowNull rewrites every schema object of doc flagged nullable so that its
// type also admits null. Other kinds are returned unchanged. Object member
// order is kept, so locations in the rewritten document match the original.
func allowNull(doc jsonv.Value, kind openapi.DocumentKind) jsonv.Value {
	keyword, ok := nullableKeywords[kind]
	if !ok {
		return doc
	}
	return rewriteNullable(doc, keyword)
}

func rewriteNullable(v jsonv.Value, keyword string) jsonv.Value {
	switch v.Kind() {
	case jsonv.Array:
		return v.Map(func(child jsonv.Value) jsonv.Value { return rewriteNullable(child, keyword) })
	case jsonv.Object:
		out := v.Map(func(child jsonv.Value) jsonv.Value { return rewriteNullable(child, keyword) })
		flag, ok := out.Lookup(keyword)
		if !ok || flag.Kind() != jsonv.Bool || !flag.Bool() {
			return out
		}
		typ, ok := out.Lookup("type")
		if !ok {
			return out
		}
		null := jsonv.StringValue("null")
		switch typ.Kind() {
		case jsonv.String:
			if typ.Str() == "null" {
				return out
			}
			return out.With("type", jsonv.ArrayValue(typ, null))
		case jsonv.Array:
			for _, item := range typ.Items() {
				if item.Kind() == jsonv.String && item.Str() == "null" {
					return out
				}
			}
			return out.With("type", typ.Append(null))
		}
		return out
	default:
		return v
	}
}
