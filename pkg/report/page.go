// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package report

import "context"

// Page is a handle to a browser document. Implementations talk to the
// document across a process or runtime boundary, so every argument and
// return value is plain data.
type Page interface {
	// Content returns the serialised markup of the whole document.
	Content(ctx context.Context) (string, error)

	// SetContent replaces the whole document with html.
	SetContent(ctx context.Context, html string) error

	// ReplaceLastInner replaces the inner content of the last element
	// matching selector with html. It reports whether an element matched.
	ReplaceLastInner(ctx context.Context, selector, html string) (bool, error)
}
