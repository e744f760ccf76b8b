// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// replaceLastInnerScript runs inside the page. It receives only plain data
// and returns whether an element matched.
const replaceLastInnerScript = `({ selector, html }) => {
  const nodes = document.querySelectorAll(selector);
  if (nodes.length === 0) {
    return false;
  }
  nodes[nodes.length - 1].innerHTML = html;
  return true;
}`

// PlaywrightPage adapts a playwright page to report.Page.
type PlaywrightPage struct {
	page playwright.Page
}

// NewPlaywrightPage wraps page.
func NewPlaywrightPage(page playwright.Page) *PlaywrightPage {
	return &PlaywrightPage{page: page}
}

// Content implements report.Page.
func (p *PlaywrightPage) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := p.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return content, nil
}

// SetContent implements report.Page.
func (p *PlaywrightPage) SetContent(ctx context.Context, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.page.SetContent(html); err != nil {
		return fmt.Errorf("failed to set page content: %w", err)
	}
	return nil
}

// ReplaceLastInner implements report.Page.
func (p *PlaywrightPage) ReplaceLastInner(ctx context.Context, selector, html string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	result, err := p.page.Evaluate(replaceLastInnerScript, map[string]any{
		"selector": selector,
		"html":     html,
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate in page: %w", err)
	}
	replaced, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected result %T from page script", result)
	}
	return replaced, nil
}

// Session owns a playwright driver, a browser and a single page.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	raw     playwright.Page

	// Page is the session's page as a report.Page
	Page *PlaywrightPage
}

// Launch starts chromium through playwright and opens a blank page. The
// playwright driver and browsers must already be installed.
func Launch(headless bool) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	page, err := b.NewPage()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Session{pw: pw, browser: b, raw: page, Page: NewPlaywrightPage(page)}, nil
}

// Screenshot saves a full-page PNG of the session page to path.
func (s *Session) Screenshot(path string) error {
	if _, err := s.raw.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	return nil
}

// Close shuts down the browser and the playwright driver.
func (s *Session) Close() error {
	return errors.Join(s.browser.Close(), s.pw.Stop())
}
