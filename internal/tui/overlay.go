// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package tui

// Modal overlays drawn on top of the active screen. The console model keeps
// at most one of them visible at a time.

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	body := errorStyle.Render("Error") + "\n\n" + m.message
	footer := helpStyle.Render("enter / esc to close")
	return overlayBoxStyle.Render(body + "\n\n" + footer)
}

// deleteConfirmModel asks before a key leaves the store. Deletion is the one
// console action with no undo.
type deleteConfirmModel struct {
	key string
}

func (m deleteConfirmModel) View() string {
	question := "Delete \"" + m.key + "\"?"
	choices := errorStyle.Render("y") + " yes    n no"
	return overlayBoxStyle.Render(question + "\n\n" + choices)
}
