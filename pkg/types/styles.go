// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// IssueStyles configures how schema issues are marked in mismatch trees and
// rendered reports. When used as an override, an empty field means "not set".
type IssueStyles struct {
	// IconPropertyError marks a property whose value violates the schema
	IconPropertyError string `json:"iconPropertyError,omitempty" yaml:"iconPropertyError,omitempty" mapstructure:"iconPropertyError"`

	// ColorPropertyError is the hex color used for error markers (e.g., "#ee930a")
	ColorPropertyError string `json:"colorPropertyError,omitempty" yaml:"colorPropertyError,omitempty" mapstructure:"colorPropertyError"`

	// IconPropertyMissing marks a required property that is absent
	IconPropertyMissing string `json:"iconPropertyMissing,omitempty" yaml:"iconPropertyMissing,omitempty" mapstructure:"iconPropertyMissing"`

	// ColorPropertyMissing is the hex color used for missing markers
	ColorPropertyMissing string `json:"colorPropertyMissing,omitempty" yaml:"colorPropertyMissing,omitempty" mapstructure:"colorPropertyMissing"`
}

// Markers returns the icon pair of the styles.
func (s IssueStyles) Markers() Markers {
	return Markers{Error: s.IconPropertyError, Missing: s.IconPropertyMissing}
}

// IsZero reports whether no field is set.
func (s IssueStyles) IsZero() bool {
	return s == IssueStyles{}
}

// Markers is the pair of strings embedded in a mismatch tree to flag a
// violating value (Error) or an absent required property (Missing).
type Markers struct {
	Error   string `json:"error"`
	Missing string `json:"missing"`
}
