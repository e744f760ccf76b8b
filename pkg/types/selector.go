// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the core data structures shared by the validation,
// annotation and reporting packages.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultStatus is the status looked up when a selector names none.
const DefaultStatus = 200

// PathSelector picks a single response schema out of a multi-operation
// document (Swagger 2.0 or OpenAPI 3.x).
type PathSelector struct {
	// Endpoint is the path template as written in the document (e.g., "/store/order")
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// Method is the HTTP method, case-insensitive (e.g., "post")
	Method string `json:"method,omitempty" yaml:"method,omitempty"`

	// Status is the response status code; 0 means DefaultStatus
	Status int `json:"status,omitempty" yaml:"status,omitempty"`
}

// IsZero reports whether no part of the selector is set.
func (s *PathSelector) IsZero() bool {
	return s == nil || (s.Endpoint == "" && s.Method == "" && s.Status == 0)
}

// EffectiveStatus returns Status, or DefaultStatus when it is not set.
func (s *PathSelector) EffectiveStatus() int {
	if s == nil || s.Status == 0 {
		return DefaultStatus
	}
	return s.Status
}

// StatusKey returns the key used in a document's responses map.
func (s *PathSelector) StatusKey() string {
	return strconv.Itoa(s.EffectiveStatus())
}

// String returns a compact human-readable form, e.g. "POST /store/order (200)".
func (s *PathSelector) String() string {
	if s.IsZero() {
		return ""
	}
	var parts []string
	if s.Method != "" {
		parts = append(parts, cases.Upper(language.Und).String(s.Method))
	}
	if s.Endpoint != "" {
		parts = append(parts, s.Endpoint)
	}
	if s.Status != 0 {
		parts = append(parts, fmt.Sprintf("(%d)", s.Status))
	}
	return strings.Join(parts, " ")
}
