// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package report

import (
	"fmt"
	"html"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const chromaModule = "github.com/alecthomas/chroma/v2"

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Highlighter turns plain text into escaped, tagged HTML markup.
type Highlighter interface {
	// Highlight returns the markup for text written in the given language.
	Highlight(text, language string) (string, error)

	// Escape returns s escaped exactly the way Highlight escapes text, so
	// callers can search the markup for known content.
	Escape(s string) string

	// Stylesheet returns the <head> fragment that styles the markup.
	Stylesheet() string
}

// ChromaHighlighter is a Highlighter backed by chroma's class-based HTML
// formatter.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter using the named chroma style.
// Unknown names fall back to chroma's default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaHighlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight implements Highlighter.
func (h *ChromaHighlighter) Highlight(text, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("no lexer for language %q", language)
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s: %w", language, err)
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", fmt.Errorf("failed to format %s: %w", language, err)
	}
	return sb.String(), nil
}

// Escape implements Highlighter. chroma escapes token text with
// html.EscapeString, so a double quote becomes &#34;.
func (h *ChromaHighlighter) Escape(s string) string {
	return html.EscapeString(s)
}

// Stylesheet implements Highlighter. The CSS is generated by the linked chroma
// version, which is recorded on the element.
func (h *ChromaHighlighter) Stylesheet() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<style data-highlighter="chroma" data-version="%s">`, html.EscapeString(HighlighterVersion()))
	sb.WriteByte('\n')
	if err := h.formatter.WriteCSS(&sb, h.style); err != nil {
		sb.WriteString("/* stylesheet unavailable */\n")
	}
	sb.WriteString("</style>")
	return sb.String()
}

// HighlighterVersion returns the chroma module version linked into the
// binary, read once from the build info.
var HighlighterVersion = sync.OnceValue(func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path != chromaModule {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return "unknown"
})
