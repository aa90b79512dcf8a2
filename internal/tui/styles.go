// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive pairs pick a readable shade on both dark and light backgrounds;
// terminals without color support render the plain text.
var (
	accentColor = lipgloss.AdaptiveColor{Light: "28", Dark: "114"}
	noticeColor = lipgloss.AdaptiveColor{Light: "130", Dark: "215"}
	dangerColor = lipgloss.AdaptiveColor{Light: "124", Dark: "203"}
)

var (
	appStyle    = lipgloss.NewStyle().Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(noticeColor)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(dangerColor)

	overlayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)
)
