// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/api2spec/schemareport/pkg/types"
)

var (
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	dim     = lipgloss.Color("#6B7280") // muted gray
)

var (
	passTagStyle  = lipgloss.NewStyle().Foreground(success).Bold(true)
	failTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	skipTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
)

func renderResult(r payloadResult) string {
	switch {
	case r.Error != "" && len(r.Errors) == 0:
		return fmt.Sprintf("%s %s %s", errorTagStyle.Render("ERROR"), r.Path, dimStyle.Render(r.Error))
	case r.Skipped:
		return fmt.Sprintf("%s  %s %s", skipTagStyle.Render("SKIP"), r.Path, dimStyle.Render("(validation disabled)"))
	case r.Passed:
		return fmt.Sprintf("%s  %s", passTagStyle.Render("PASS"), r.Path)
	default:
		return fmt.Sprintf("%s  %s %s", failTagStyle.Render("FAIL"), r.Path, dimStyle.Render(pluralize(len(r.Errors), "error")))
	}
}

func renderErrorRecord(e types.ErrorRecord) string {
	location := e.InstancePath
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("%s %s %s", location, dimStyle.Render("["+e.Keyword+"]"), e.Message)
}

func renderSummary(results []payloadResult) string {
	var passed, failed, broken int
	for _, r := range results {
		switch {
		case r.Error != "" && len(r.Errors) == 0:
			broken++
		case r.Passed:
			passed++
		default:
			failed++
		}
	}

	parts := []string{passTagStyle.Render(fmt.Sprintf("%d passed", passed))}
	if failed > 0 {
		parts = append(parts, failTagStyle.Render(fmt.Sprintf("%d failed", failed)))
	}
	if broken > 0 {
		parts = append(parts, errorTagStyle.Render(fmt.Sprintf("%d errored", broken)))
	}
	return "\n" + strings.Join(parts, dimStyle.Render(", ")) + dimStyle.Render(fmt.Sprintf(" (%s)", pluralize(len(results), "payload")))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
