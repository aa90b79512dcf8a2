package tui

import (
	"strings"

	"github.com/arbormail/arbormail/models"
	"github.com/charmbracelet/bubbles/textinput"
)

// formModel edits one config key. In editing mode the key is fixed and only
// the value input takes focus; renaming a key is a delete plus a create.
type formModel struct {
	inputs     []textinput.Model
	focus      int
	editing    bool
	submitting bool
}

func newFormModel(entry *models.ConfigKey) formModel {
	keyInput := textinput.New()
	keyInput.Placeholder = "server.hostname"
	keyInput.CharLimit = 200
	keyInput.Width = 60

	valueInput := textinput.New()
	valueInput.Placeholder = "value"
	valueInput.Width = 60

	m := formModel{inputs: []textinput.Model{keyInput, valueInput}}
	if entry != nil {
		m.editing = true
		m.inputs[0].SetValue(entry.Key)
		m.inputs[1].SetValue(entry.Value)
		m.focus = 1
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) entry() models.ConfigKey {
	return models.ConfigKey{
		Key:   strings.TrimSpace(m.inputs[0].Value()),
		Value: m.inputs[1].Value(),
	}
}

func (m formModel) View() string {
	title := "New config key"
	if m.editing {
		title = "Edit config key"
	}
	out := titleStyle.Render(title) + "\n\n"

	if m.editing {
		out += "Key:   " + m.inputs[0].Value() + "\n"
	} else {
		out += "Key:   [" + m.inputs[0].View() + "]\n"
	}
	out += "Value: [" + m.inputs[1].View() + "]\n"

	if m.submitting {
		out += "\n[Saving...]\n"
	} else {
		out += "\n[Save]\n"
	}

	if m.editing {
		out += "\n" + helpStyle.Render("enter save  esc back")
	} else {
		out += "\n" + helpStyle.Render("enter save  tab next field  esc back")
	}
	return out
}
