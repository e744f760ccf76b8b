// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package validator checks JSON data against JSON Schema, Swagger 2.0 and
// OpenAPI 3.x documents and produces error records plus a mismatch tree
// tagged with the validator's own markers.
package validator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/api2spec/schemareport/internal/openapi"
	"github.com/api2spec/schemareport/pkg/jsonv"
	"github.com/api2spec/schemareport/pkg/types"
)

const (
	// ErrorMarker tags a value that violates the schema.
	ErrorMarker = "⛔"

	// MissingMarker tags a required property that is absent.
	MissingMarker = "❓"

	documentURL = "https://schemareport.local/document.json"

	maxCachedSchemas = 64
)

// ErrRemoteReference is returned when a schema refers to a document other
// than itself.
var ErrRemoteReference = errors.New("remote schema references are not supported")

// DefaultMarkers returns the markers embedded in every mismatch tree
// produced by a Validator.
func DefaultMarkers() types.Markers {
	return types.Markers{Error: ErrorMarker, Missing: MissingMarker}
}

// Validator validates data against schema documents. It is safe for
// concurrent use; compiled schemas are cached.
type Validator struct {
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]*jsonschema.Schema
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger: slog.Default(),
		cache:  make(map[string]*jsonschema.Schema),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks data against the schema selected by sel. Violations are not
// an error: they are reported in the returned Outcome, whose mismatch tree is
// a copy of data tagged with DefaultMarkers. The styles are accepted for
// interface compatibility and do not affect the outcome.
func (v *Validator) Validate(ctx context.Context, data, schema jsonv.Value, sel *types.PathSelector, _ types.IssueStyles) (*types.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc, err := openapi.Locate(schema, sel)
	if err != nil {
		return nil, err
	}
	schema = allowNull(schema, loc.Kind)

	compiled, err := v.compile(schema, loc)
	if err != nil {
		return nil, err
	}

	outcome := &types.Outcome{DataMismatches: data, Markers: DefaultMarkers()}

	err = compiled.Validate(data.ToAny())
	if err == nil {
		return outcome, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("failed to validate data: %w", err)
	}

	leaves := collectLeaves(ve, nil)
	slices.SortStableFunc(leaves, func(a, b *jsonschema.ValidationError) int {
		if c := cmp.Compare(a.InstanceLocation, b.InstanceLocation); c != 0 {
			return c
		}
		return cmp.Compare(a.KeywordLocation, b.KeywordLocation)
	})

	outcome.Errors = make([]types.ErrorRecord, 0, len(leaves))
	for _, leaf := range leaves {
		_, fragment := splitLocation(leaf.AbsoluteKeywordLocation)
		outcome.Errors = append(outcome.Errors, types.ErrorRecord{
			InstancePath: leaf.InstanceLocation,
			SchemaPath:   fragment,
			Keyword:      keywordOf(leaf.KeywordLocation),
			Message:      leaf.Message,
		})
	}
	outcome.DataMismatches = buildMismatches(data, schema, leaves)

	v.logger.Debug("schema validation finished", "errors", len(outcome.Errors), "kind", loc.Kind.String())
	return outcome, nil
}

func (v *Validator) compile(schema jsonv.Value, loc openapi.Location) (*jsonschema.Schema, error) {
	text := schema.String()
	target := documentURL
	if len(loc.Pointer) > 0 {
		target += "#" + escapePointer(loc.Pointer)
	}
	key := loc.Kind.String() + "\x00" + target + "\x00" + text

	v.mu.Lock()
	defer v.mu.Unlock()

	if compiled, ok := v.cache[key]; ok {
		return compiled, nil
	}

	compiler := jsonschema.NewCompiler()
	if draft := draftFor(loc.Kind); draft != nil {
		compiler.Draft = draft
	}
	compiler.LoadURL = func(s string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("%w: %s", ErrRemoteReference, s)
	}
	if err := compiler.AddResource(documentURL, strings.NewReader(text)); err != nil {
		return nil, fmt.Errorf("failed to load schema document: %w", err)
	}

	compiled, err := compiler.Compile(target)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	if len(v.cache) >= maxCachedSchemas {
		clear(v.cache)
	}
	v.cache[key] = compiled
	v.logger.Debug("compiled schema", "location", loc.Fragment(), "kind", loc.Kind.String())
	return compiled, nil
}

// draftFor returns the draft implied by the document kind, or nil to let the
// document's $schema (or the latest draft) decide.
func draftFor(kind openapi.DocumentKind) *jsonschema.Draft {
	switch kind {
	case openapi.KindSwagger2, openapi.KindOpenAPI30:
		return jsonschema.Draft4
	case openapi.KindOpenAPI31:
		return jsonschema.Draft2020
	default:
		return nil
	}
}

// collectLeaves flattens the error tree. Combinators report a single error
// at their own location; wrappers ($ref, allOf, the root) are descended.
func collectLeaves(ve *jsonschema.ValidationError, out []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	kw := keywordOf(ve.KeywordLocation)
	if len(ve.Causes) == 0 || kw == "anyOf" || kw == "oneOf" {
		if ve.Message != "" {
			out = append(out, ve)
		}
		return out
	}
	for _, cause := range ve.Causes {
		out = collectLeaves(cause, out)
	}
	return out
}

// keywordOf returns the failing keyword of a keyword location such as
// "/properties/status/enum" or "/dependentRequired/a/0".
func keywordOf(location string) string {
	segments := strings.Split(strings.TrimPrefix(location, "/"), "/")
	for len(segments) > 1 && isIndex(segments[len(segments)-1]) {
		segments = segments[:len(segments)-1]
	}
	if n := len(segments); n >= 2 {
		switch segments[n-2] {
		case "dependencies", "dependentRequired":
			return segments[n-2]
		}
	}
	return segments[len(segments)-1]
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitLocation splits an absolute keyword location into its document URL
// and "#"-prefixed fragment.
func splitLocation(location string) (string, string) {
	i := strings.IndexByte(location, '#')
	if i < 0 {
		return location, "#"
	}
	return location[:i], location[i:]
}

// decodeLocation turns a pointer whose tokens are percent-escaped, as
// produced by the schema library, into reference tokens.
func decodeLocation(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "#")
	if pointer == "" || pointer == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, part := range parts {
		if unescaped, err := url.PathUnescape(part); err == nil {
			part = unescaped
		}
		parts[i] = strings.NewReplacer("~1", "/", "~0", "~").Replace(part)
	}
	return parts
}

func escapePointer(tokens []string) string {
	var sb strings.Builder
	for _, t := range tokens {
		t = strings.NewReplacer("~", "~0", "/", "~1").Replace(t)
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(t))
	}
	return sb.String()
}
