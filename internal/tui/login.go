// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// loginModel holds the session screen state: the admin account name and the
// admin secret. The secret input uses masked echo and is never kept after
// submission; the issued token lives in the management API client.
type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

// newLoginModel pre-fills the account name when the operator supplied one
// through settings, moving focus straight to the secret input.
func newLoginModel(login string) loginModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "admin"
	loginInput.CharLimit = 64
	loginInput.Width = 40

	secretInput := textinput.New()
	secretInput.Placeholder = "secret"
	secretInput.CharLimit = 256
	secretInput.Width = 40
	secretInput.EchoMode = textinput.EchoPassword
	secretInput.EchoCharacter = '*'

	m := loginModel{inputs: []textinput.Model{loginInput, secretInput}}
	if login != "" {
		m.inputs[0].SetValue(login)
		m.focus = 1
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("Field   │ Value\n")
	b.WriteString("────────┼────────────────────────────────────────────\n")
	b.WriteString("Login   │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Secret  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Opening session...]\n")
	} else {
		b.WriteString("\n[Open session]\n")
	}

	return renderPage("ARBORMAIL SIGN IN", strings.TrimRight(b.String(), "\n"), "enter: submit │ tab: next field │ esc: quit")
}
