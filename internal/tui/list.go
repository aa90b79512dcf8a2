package tui

import (
	"fmt"
	"strings"

	"github.com/arbormail/arbormail/models"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

const listValueWidth = 44

type listModel struct {
	entries   []models.ConfigKey
	idx       int
	loading   bool
	filter    textinput.Model
	filtering bool
	spinner   spinner.Model
	status    string
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	f := textinput.New()
	f.Placeholder = "key substring"
	f.CharLimit = 120
	f.Width = 40

	return listModel{spinner: s, filter: f, loading: true}
}

// visible returns the entries whose key contains the filter text. The cursor
// indexes into this slice, not into entries.
func (m listModel) visible() []models.ConfigKey {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		return m.entries
	}

	matched := make([]models.ConfigKey, 0, len(m.entries))
	for _, entry := range m.entries {
		if strings.Contains(strings.ToLower(entry.Key), needle) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func (m listModel) current() (models.ConfigKey, bool) {
	visible := m.visible()
	if len(visible) == 0 || m.idx < 0 || m.idx >= len(visible) {
		return models.ConfigKey{}, false
	}
	return visible[m.idx], true
}

func (m listModel) View() string {
	header := titleStyle.Render("Arbormail config store")
	if m.loading {
		header += "  " + m.spinner.View()
	}
	out := header + "\n\n"

	if m.filtering || m.filter.Value() != "" {
		out += "filter: [" + m.filter.View() + "]\n\n"
	}

	visible := m.visible()
	switch {
	case m.loading && len(m.entries) == 0:
		out += "Loading...\n"
	case len(m.entries) == 0:
		out += "The store holds no keys\n"
	case len(visible) == 0:
		out += "No keys match the filter\n"
	default:
		for i, entry := range visible {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			out += fmt.Sprintf("%s%s = %s\n", cursor, entry.Key, truncate(entry.Value, listValueWidth))
		}
	}

	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status) + "\n"
	}

	if m.filtering {
		out += "\n" + helpStyle.Render("enter apply  esc clear")
	} else {
		out += "\n" + helpStyle.Render("enter open  / filter  n new  d delete  c copy  r reload  v daemon  q quit")
	}
	return out
}
