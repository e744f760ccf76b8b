// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/api2spec/schemareport/pkg/jsonv"
	"github.com/api2spec/schemareport/pkg/types"
)

var (
	// ErrSelectorRequired is returned when a multi-operation document is
	// used without an endpoint and method.
	ErrSelectorRequired = errors.New("schema document describes multiple operations: endpoint and method are required")

	// ErrOperationNotFound is returned when the selector matches no response
	// in the document.
	ErrOperationNotFound = errors.New("operation not found in schema document")

	// ErrNoResponseSchema is returned when the selected response has no body
	// schema.
	ErrNoResponseSchema = errors.New("response has no schema")
)

// DocumentKind identifies the flavour of a schema document.
type DocumentKind int

const (
	// KindJSONSchema is a plain JSON Schema document.
	KindJSONSchema DocumentKind = iota
	// KindSwagger2 is a Swagger 2.0 document.
	KindSwagger2
	// KindOpenAPI30 is an OpenAPI 3.0.x document.
	KindOpenAPI30
	// KindOpenAPI31 is an OpenAPI 3.1.x (or later) document.
	KindOpenAPI31
)

// String returns the kind name.
func (k DocumentKind) String() string {
	switch k {
	case KindSwagger2:
		return "swagger-2.0"
	case KindOpenAPI30:
		return "openapi-3.0"
	case KindOpenAPI31:
		return "openapi-3.1"
	default:
		return "json-schema"
	}
}

var lowerMethod = cases.Lower(language.Und)

// DetectKind inspects the version fields of doc.
func DetectKind(doc jsonv.Value) DocumentKind {
	if v, ok := doc.Lookup("swagger"); ok && v.Kind() == jsonv.String {
		return KindSwagger2
	}
	if v, ok := doc.Lookup("openapi"); ok && v.Kind() == jsonv.String {
		if strings.HasPrefix(v.Str(), "3.0") {
			return KindOpenAPI30
		}
		return KindOpenAPI31
	}
	return KindJSONSchema
}

// IsMultiOperation reports whether doc is a Swagger or OpenAPI document
// with paths, as opposed to a single schema.
func IsMultiOperation(doc jsonv.Value) bool {
	return DetectKind(doc) != KindJSONSchema && doc.Has("paths")
}

// Location points at the response schema inside a document.
type Location struct {
	// Kind is the kind of the containing document
	Kind DocumentKind

	// Pointer holds the reference tokens of the schema; empty means the root
	Pointer []string
}

// Fragment returns the location as a URI fragment, e.g. "#/paths/~1pets/get".
func (l Location) Fragment() string {
	return "#" + jsonv.FormatPointer(l.Pointer)
}

// Locate finds the response schema selected by sel. Documents that are not
// multi-operation are schemas themselves and sel is ignored.
func Locate(doc jsonv.Value, sel *types.PathSelector) (Location, error) {
	kind := DetectKind(doc)
	if !IsMultiOperation(doc) {
		return Location{Kind: kind}, nil
	}
	if sel == nil || sel.Endpoint == "" || sel.Method == "" {
		return Location{}, ErrSelectorRequired
	}

	method := lowerMethod.String(sel.Method)
	opPointer := []string{"paths", sel.Endpoint, method}
	if _, ok := doc.At(opPointer); !ok {
		return Location{}, fmt.Errorf("%w: %s", ErrOperationNotFound, sel.String())
	}

	responsePointer, err := findResponse(doc, opPointer, sel)
	if err != nil {
		return Location{}, err
	}

	schemaPointer, err := findSchema(doc, kind, responsePointer)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %s", err, sel.String())
	}
	return Location{Kind: kind, Pointer: schemaPointer}, nil
}

// findResponse tries the exact status (200 when unset), the "2XX" style
// range and then "default", following a local $ref on the response object.
func findResponse(doc jsonv.Value, opPointer []string, sel *types.PathSelector) ([]string, error) {
	keys := []string{sel.StatusKey(), fmt.Sprintf("%dXX", sel.EffectiveStatus()/100), "default"}

	responses := append(append([]string{}, opPointer...), "responses")
	for _, key := range keys {
		pointer := append(append([]string{}, responses...), key)
		if _, ok := doc.At(pointer); ok {
			return ResolveRef(doc, pointer)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, sel.String())
}

func findSchema(doc jsonv.Value, kind DocumentKind, response []string) ([]string, error) {
	if kind == KindSwagger2 {
		pointer := append(append([]string{}, response...), "schema")
		if _, ok := doc.At(pointer); !ok {
			return nil, ErrNoResponseSchema
		}
		return pointer, nil
	}

	contentPointer := append(append([]string{}, response...), "content")
	content, ok := doc.At(contentPointer)
	if !ok || content.Kind() != jsonv.Object || content.Len() == 0 {
		return nil, ErrNoResponseSchema
	}

	mediaType := pickMediaType(content.Keys())
	pointer := append(contentPointer, mediaType, "schema")
	if _, ok := doc.At(pointer); !ok {
		return nil, ErrNoResponseSchema
	}
	return pointer, nil
}

func pickMediaType(keys []string) string {
	for _, k := range keys {
		if k == "application/json" {
			return k
		}
	}
	for _, k := range keys {
		if strings.Contains(k, "json") {
			return k
		}
	}
	return keys[0]
}

// ResolveRef follows local "$ref" members until a non-reference is reached.
func ResolveRef(doc jsonv.Value, pointer []string) ([]string, error) {
	seen := map[string]bool{}
	for {
		node, ok := doc.At(pointer)
		if !ok {
			return nil, fmt.Errorf("%w: dangling reference %s", ErrOperationNotFound, jsonv.FormatPointer(pointer))
		}
		ref, ok := node.Lookup("$ref")
		if !ok || ref.Kind() != jsonv.String || !strings.HasPrefix(ref.Str(), "#") {
			return pointer, nil
		}
		if seen[ref.Str()] {
			return nil, fmt.Errorf("circular reference %s", ref.Str())
		}
		seen[ref.Str()] = true

		next, err := jsonv.ParsePointer(strings.TrimPrefix(ref.Str(), "#"))
		if err != nil {
			return nil, err
		}
		pointer = next
	}
}
