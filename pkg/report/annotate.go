// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package report

import (
	"strings"

	"github.com/api2spec/schemareport/pkg/jsonv"
	"github.com/api2spec/schemareport/pkg/types"
)

// Annotate rewrites the markers embedded in a mismatch tree, replacing every
// literal occurrence of from.Error with to.Error and of from.Missing with
// to.Missing in string values. Both are replaced in a single pass, so a new
// marker equal to an old one is never rewritten again. Keys, order and
// non-string values are kept. The input is not modified.
func Annotate(node jsonv.Value, from, to types.Markers) jsonv.Value {
	switch node.Kind() {
	case jsonv.String:
		return jsonv.StringValue(replaceMarkers(node.Str(), from, to))
	case jsonv.Array, jsonv.Object:
		return node.Map(func(child jsonv.Value) jsonv.Value {
			return Annotate(child, from, to)
		})
	default:
		return node
	}
}

func replaceMarkers(s string, from, to types.Markers) string {
	var pairs []string
	if from.Error != "" {
		pairs = append(pairs, from.Error, to.Error)
	}
	if from.Missing != "" {
		pairs = append(pairs, from.Missing, to.Missing)
	}
	if len(pairs) == 0 {
		return s
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
