// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package report

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Action describes what an injection did to the page.
type Action int

const (
	// ActionNone means the document was left untouched.
	ActionNone Action = iota
	// ActionReplaceDocument means the whole document was replaced.
	ActionReplaceDocument
	// ActionReplaceSubtree means only the response body section was replaced.
	ActionReplaceSubtree
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionReplaceDocument:
		return "replace-document"
	case ActionReplaceSubtree:
		return "replace-subtree"
	default:
		return "none"
	}
}

const uninitializedSkeleton = "<html><head></head><body></body></html>"

var (
	doctypePattern    = regexp.MustCompile(`(?i)^<!doctype[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Injector merges a rendered report into a live page.
type Injector struct {
	selector string
	logger   *slog.Logger
}

// InjectorOption configures an Injector.
type InjectorOption func(*Injector)

// WithSelector sets the selector of the response body section maintained by a
// cooperating report viewer. The section written by StandalonePage is always
// matched as well.
func WithSelector(selector string) InjectorOption {
	return func(i *Injector) {
		if selector != "" {
			i.selector = selector
		}
	}
}

// WithInjectorLogger sets the logger used for no-op injections.
func WithInjectorLogger(logger *slog.Logger) InjectorOption {
	return func(i *Injector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInjector creates an Injector.
func NewInjector(opts ...InjectorOption) *Injector {
	i := &Injector{
		selector: ResponseBodySelector,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Selector returns the selector group used to find the response body section.
func (i *Injector) Selector() string {
	if i.selector == ResponseBodySelector {
		return i.selector
	}
	return i.selector + ", " + ResponseBodySelector
}

// Inject writes the report into page. An empty or uninitialized document is
// replaced by standalone; otherwise the inner content of the last response
// body section is replaced by body. A document with neither is left alone.
func (i *Injector) Inject(ctx context.Context, page Page, body, standalone string) (Action, error) {
	content, err := page.Content(ctx)
	if err != nil {
		return ActionNone, fmt.Errorf("failed to read page content: %w", err)
	}

	if IsUninitialized(content) {
		if err := page.SetContent(ctx, standalone); err != nil {
			return ActionNone, fmt.Errorf("failed to set page content: %w", err)
		}
		return ActionReplaceDocument, nil
	}

	replaced, err := page.ReplaceLastInner(ctx, i.Selector(), body)
	if err != nil {
		return ActionNone, fmt.Errorf("failed to replace response body section: %w", err)
	}
	if !replaced {
		i.logger.Debug("page has no response body section, report not injected", "selector", i.Selector())
		return ActionNone, nil
	}
	return ActionReplaceSubtree, nil
}

// IsUninitialized reports whether content is an empty document or the bare
// skeleton a browser serialises for a blank page. Whitespace, letter case and
// a leading doctype are ignored.
func IsUninitialized(content string) bool {
	normalized := strings.TrimSpace(content)
	normalized = doctypePattern.ReplaceAllString(normalized, "")
	normalized = whitespacePattern.ReplaceAllString(normalized, "")
	if normalized == "" {
		return true
	}
	return strings.EqualFold(normalized, uninitializedSkeleton)
}
