// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// Toggles are the process-level switches consulted on every validation call.
type Toggles struct {
	// DisableValidation skips validation entirely; data is returned as-is
	DisableValidation bool

	// SuppressUI keeps validating and logging but never touches a page
	SuppressUI bool
}
