// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathSelector_String(t *testing.T) {
	tests := []struct {
		name     string
		selector *PathSelector
		expected string
	}{
		{"nil", nil, ""},
		{"zero", &PathSelector{}, ""},
		{"full", &PathSelector{Endpoint: "/store/order", Method: "post", Status: 200}, "POST /store/order (200)"},
		{"no status", &PathSelector{Endpoint: "/pets", Method: "Get"}, "GET /pets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.selector.String())
		})
	}
}

func TestPathSelector_StatusKey(t *testing.T) {
	assert.Equal(t, "200", (*PathSelector)(nil).StatusKey())
	assert.Equal(t, "200", (&PathSelector{Endpoint: "/x"}).StatusKey())
	assert.Equal(t, "404", (&PathSelector{Status: 404}).StatusKey())
	assert.Equal(t, 200, (&PathSelector{}).EffectiveStatus())
}

func TestIssueStyles_Markers(t *testing.T) {
	s := IssueStyles{IconPropertyError: "A", IconPropertyMissing: "B", ColorPropertyError: "#fff"}
	assert.Equal(t, Markers{Error: "A", Missing: "B"}, s.Markers())
	assert.False(t, s.IsZero())
	assert.True(t, IssueStyles{}.IsZero())
}

func TestResult_Passed(t *testing.T) {
	assert.False(t, (*Result)(nil).Passed())
	assert.True(t, (&Result{}).Passed())
	assert.False(t, (&Result{Errors: []ErrorRecord{{Keyword: "required"}}}).Passed())
}
