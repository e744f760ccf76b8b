// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import "github.com/api2spec/schemareport/pkg/jsonv"

// ErrorRecord is a single schema violation reported by a validator.
type ErrorRecord struct {
	// InstancePath is the JSON pointer of the offending value in the data
	InstancePath string `json:"instancePath"`

	// SchemaPath is the JSON pointer of the failing keyword in the schema
	SchemaPath string `json:"schemaPath"`

	// Keyword is the failing schema keyword (e.g., "required", "enum")
	Keyword string `json:"keyword"`

	// Message is a human-readable description of the violation
	Message string `json:"message"`
}

// Outcome is what a validator returns: the violations plus a copy of the data
// whose violating nodes are tagged with the validator's own Markers.
type Outcome struct {
	Errors         []ErrorRecord `json:"errors"`
	DataMismatches jsonv.Value   `json:"dataMismatches"`
	Markers        Markers       `json:"markers"`
}

// Result is the outcome of one validation call. Errors is nil when the data
// conforms; DataMismatches is tagged with the effective style markers.
type Result struct {
	Errors         []ErrorRecord `json:"errors"`
	DataMismatches jsonv.Value   `json:"dataMismatches"`
}

// Passed reports whether the data conformed to the schema.
func (r *Result) Passed() bool {
	return r != nil && len(r.Errors) == 0
}
