// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/api2spec/schemareport/pkg/jsonv"
	"github.com/api2spec/schemareport/pkg/types"
)

const (
	// ContainerClass is the class of the <pre> element wrapping a report.
	ContainerClass = "chroma"

	// ResponseBodyAttr flags the element that holds the response body report.
	ResponseBodyAttr = "data-report-section"

	// ResponseBodySelector selects the element flagged by ResponseBodyAttr.
	ResponseBodySelector = `[data-report-section="response-body"]`

	reportIndent = "    "
	fontStyles   = "font-weight: bold; font-size: 1.3em;"
)

// Renderer turns an annotated mismatch tree into highlighted HTML.
type Renderer struct {
	hl Highlighter
}

// NewRenderer creates a Renderer using the given highlighter.
func NewRenderer(hl Highlighter) *Renderer {
	return &Renderer{hl: hl}
}

// Render serialises annotated as indented JSON, highlights it and styles
// every error and missing marker that opens a JSON string. Markers appearing
// later inside a string are left alone.
func (r *Renderer) Render(annotated jsonv.Value, style types.IssueStyles) (string, error) {
	text := annotated.MarshalIndent(reportIndent)

	markup, err := r.hl.Highlight(text, "json")
	if err != nil {
		return "", fmt.Errorf("failed to highlight report: %w", err)
	}

	markup = r.styleMarker(markup, style.IconPropertyError, style.ColorPropertyError)
	markup = r.styleMarker(markup, style.IconPropertyMissing, style.ColorPropertyMissing)

	return `<pre class="` + ContainerClass + `">` + markup + `</pre>`, nil
}

// styleMarker inserts an inline style attribute in front of every ">" that
// closes a tag immediately followed by an opening quote and the icon, i.e.
// into the span holding a string token that starts with the icon.
func (r *Renderer) styleMarker(markup, icon, color string) string {
	if icon == "" {
		return markup
	}
	anchor := ">" + r.hl.Escape(`"`) + r.hl.Escape(icon)
	return strings.ReplaceAll(markup, anchor, StyleAttr(color)+anchor)
}

// StyleAttr returns the inline style attribute applied to a marker token.
func StyleAttr(color string) string {
	return fmt.Sprintf(` style="%s color: %s;"`, fontStyles, html.EscapeString(color))
}

// StandalonePage wraps markup into a complete HTML document carrying the
// highlighter stylesheet. The markup sits in the response body section so a
// later report can replace it in place.
func (r *Renderer) StandalonePage(markup string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n<title>Schema validation report</title>\n")
	sb.WriteString(r.hl.Stylesheet())
	sb.WriteString("\n</head>\n<body>\n")
	fmt.Fprintf(&sb, `<div %s="response-body">`, ResponseBodyAttr)
	sb.WriteString(markup)
	sb.WriteString("</div>\n</body>\n</html>\n")
	return sb.String()
}
