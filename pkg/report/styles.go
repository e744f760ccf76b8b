// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package report turns a validator's mismatch tree into a styled, highlighted
// HTML report and places it into a browser page.
package report

import "github.com/api2spec/schemareport/pkg/types"

var defaultStyles = types.IssueStyles{
	IconPropertyError:    "😱",
	ColorPropertyError:   "#ee930a",
	IconPropertyMissing:  "😡",
	ColorPropertyMissing: "#c10000",
}

// DefaultStyles returns the process-wide default issue styles.
func DefaultStyles() types.IssueStyles {
	return defaultStyles
}

// MergeStyles returns the default styles with every non-empty field of
// overrides applied. A nil overrides yields the defaults.
func MergeStyles(overrides *types.IssueStyles) types.IssueStyles {
	return MergeOnto(defaultStyles, overrides)
}

// MergeOnto applies the non-empty fields of overrides onto base.
func MergeOnto(base types.IssueStyles, overrides *types.IssueStyles) types.IssueStyles {
	if overrides == nil {
		return base
	}
	merged := base
	if overrides.IconPropertyError != "" {
		merged.IconPropertyError = overrides.IconPropertyError
	}
	if overrides.ColorPropertyError != "" {
		merged.ColorPropertyError = overrides.ColorPropertyError
	}
	if overrides.IconPropertyMissing != "" {
		merged.IconPropertyMissing = overrides.IconPropertyMissing
	}
	if overrides.ColorPropertyMissing != "" {
		merged.ColorPropertyMissing = overrides.ColorPropertyMissing
	}
	return merged
}
