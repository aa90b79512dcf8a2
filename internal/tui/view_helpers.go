// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const pageWidth = 54

var pageBodyStyle = lipgloss.NewStyle().PaddingLeft(2)

// renderPage frames a screen body between horizontal rules, with the footer
// hot keys underneath. Full-screen views share this chrome so the console
// looks the same no matter which screen is up.
func renderPage(title, body, hotKeys string) string {
	rule := helpStyle.Render(strings.Repeat("─", pageWidth))

	if strings.TrimSpace(body) == "" {
		body = "-"
	}

	footer := "ctrl+c: quit"
	if strings.TrimSpace(hotKeys) != "" {
		footer = hotKeys + "\n" + footer
	}

	page := titleStyle.Render(title) + "\n" +
		rule + "\n\n" +
		strings.TrimRight(body, "\n") + "\n\n" +
		rule + "\n" +
		helpStyle.Render(footer)

	return pageBodyStyle.Render(page)
}

// truncate shortens v to at most max runes, marking the cut with an
// ellipsis. Config values may hold multi-byte text, so the cut is made on
// rune boundaries.
func truncate(v string, max int) string {
	if max <= 0 {
		return v
	}
	runes := []rune(v)
	if len(runes) <= max {
		return v
	}
	return string(runes[:max-1]) + "…"
}
