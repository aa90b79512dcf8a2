package tui

import (
	"time"

	"github.com/arbormail/arbormail/models"
)

type detailModel struct {
	entry  models.ConfigKey
	status string
}

func (m detailModel) View() string {
	out := titleStyle.Render(m.entry.Key) + "\n\n"

	if m.entry.Value == "" {
		out += "(empty value)\n"
	} else {
		out += m.entry.Value + "\n"
	}

	out += "\n"
	if !m.entry.UpdatedAt.IsZero() {
		out += helpStyle.Render("updated "+m.entry.UpdatedAt.Local().Format(time.RFC1123)) + "\n\n"
	}

	out += helpStyle.Render("e edit  d delete  c copy value  esc back")

	if m.status != "" {
		out += "\n\n" + statusStyle.Render(m.status)
	}

	return out
}
