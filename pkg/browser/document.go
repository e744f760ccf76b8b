// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package browser provides report.Page implementations: an adapter for a
// live playwright page and an in-memory HTML document that can be loaded
// from and saved to disk.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is an in-memory HTML document. It is safe for concurrent use.
type Document struct {
	mu   sync.Mutex
	root *html.Node
}

// NewDocument returns a blank document, serialised the way a browser
// serialises about:blank.
func NewDocument() *Document {
	root, _ := html.Parse(strings.NewReader(""))
	return &Document{root: root}
}

// ParseDocument parses markup into a Document.
func ParseDocument(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{root: root}, nil
}

// LoadDocument reads the document stored at path. A missing file yields a
// blank document.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseDocument(string(data))
}

// WriteFile saves the document to path, creating parent directories.
func (d *Document) WriteFile(path string) error {
	content, err := d.Content(context.Background())
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Content implements report.Page.
func (d *Document) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var sb strings.Builder
	if err := html.Render(&sb, d.root); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return sb.String(), nil
}

// SetContent implements report.Page.
func (d *Document) SetContent(ctx context.Context, markup string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	d.mu.Lock()
	d.root = root
	d.mu.Unlock()
	return nil
}

// ReplaceLastInner implements report.Page.
func (d *Document) ReplaceLastInner(ctx context.Context, selector, markup string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	sel, err := cascadia.Compile(selector)
	if err != nil {
		return false, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	matches := cascadia.QueryAll(d.root, sel)
	if len(matches) == 0 {
		return false, nil
	}
	target := matches[len(matches)-1]

	nodes, err := html.ParseFragment(strings.NewReader(markup), target)
	if err != nil {
		return false, fmt.Errorf("failed to parse HTML fragment: %w", err)
	}

	for child := target.FirstChild; child != nil; {
		next := child.NextSibling
		target.RemoveChild(child)
		child = next
	}
	for _, n := range nodes {
		target.AppendChild(n)
	}
	return true, nil
}
