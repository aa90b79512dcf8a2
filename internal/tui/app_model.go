package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arbormail/arbormail/internal/adapter"
	"github.com/arbormail/arbormail/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenLogin screen = iota
	screenList
	screenDetail
	screenForm
)

type consoleModel struct {
	ctx           context.Context
	client        adapter.ManagementClient
	currentScreen screen

	login  loginModel
	list   listModel
	detail detailModel
	form   formModel

	daemon models.BuildInfo

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	deleteConfirm deleteConfirmModel
	showInfo      bool
	pendingDelete string
}

func newConsoleModel(ctx context.Context, client adapter.ManagementClient, login string) consoleModel {
	return consoleModel{
		ctx:           ctx,
		client:        client,
		currentScreen: screenLogin,
		login:         newLoginModel(login),
		list:          newListModel(),
	}
}

func (m consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				if m.pendingDelete == "" {
					return m, nil
				}
				return m, m.cmdDeleteKey(m.pendingDelete)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = ""
			}
			return m, nil
		}
		if m.showInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
				m.showInfo = false
			}
			return m, nil
		}
	case sessionOpenedMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.showErrorf(humanizeTransportError(msg.err))
			return m, nil
		}
		m.currentScreen = screenList
		m.list.loading = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadKeys(), m.cmdDaemonInfo())
	case keysLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			m.showErrorf(humanizeTransportError(msg.err))
			return m, nil
		}
		m.list.entries = msg.entries
		m.clampListCursor()
		return m, nil
	case keySavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.showErrorf(humanizeTransportError(msg.err))
			return m, nil
		}
		m.currentScreen = screenList
		m.list.loading = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadKeys())
	case keyDeletedMsg:
		if msg.err != nil {
			m.showErrorf(humanizeTransportError(msg.err))
			return m, nil
		}
		m.pendingDelete = ""
		m.currentScreen = screenList
		m.list.status = "Deleted " + msg.key
		m.list.loading = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadKeys(), cmdClearStatus())
	case daemonInfoMsg:
		// A failed version probe never blocks the console; the info
		// window simply shows N/A.
		if msg.err == nil {
			m.daemon = msg.info
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		if m.currentScreen == screenDetail {
			m.detail.status = "Copied!"
		}
		m.list.status = "Copied!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.detail.status = ""
		m.list.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m consoleModel) View() string {
	var body string
	switch m.currentScreen {
	case screenLogin:
		body = m.login.View()
	case screenList:
		body = m.list.View()
	case screenDetail:
		body = m.detail.View()
	case screenForm:
		body = m.form.View()
	}

	if m.showInfo {
		body = renderDaemonInfoWindow(m.daemon)
	}
	if m.showConfirm {
		body += "\n\n" + m.deleteConfirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *consoleModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *consoleModel) clampListCursor() {
	visible := m.list.visible()
	if m.list.idx >= len(visible) {
		m.list.idx = len(visible) - 1
	}
	if m.list.idx < 0 {
		m.list.idx = 0
	}
}

func (m consoleModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab):
			m.login = focusNextLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = focusPrevLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			login := strings.TrimSpace(m.login.inputs[0].Value())
			secret := m.login.inputs[1].Value()
			if login == "" || secret == "" {
				m.showErrorf("Login and secret are required")
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdOpenSession(models.Credentials{Login: login, Secret: secret})
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m consoleModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.filtering {
			switch {
			case key.Matches(msg, keys.esc):
				m.list.filtering = false
				m.list.filter.SetValue("")
				m.list.filter.Blur()
				m.list.idx = 0
			case key.Matches(msg, keys.enter):
				m.list.filtering = false
				m.list.filter.Blur()
			default:
				var cmd tea.Cmd
				m.list.filter, cmd = m.list.filter.Update(msg)
				m.list.idx = 0
				return m, cmd
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.up):
			if m.list.idx > 0 {
				m.list.idx--
			}
		case key.Matches(msg, keys.down):
			if m.list.idx < len(m.list.visible())-1 {
				m.list.idx++
			}
		case key.Matches(msg, keys.enter):
			entry, ok := m.list.current()
			if !ok {
				return m, nil
			}
			m.detail = detailModel{entry: entry}
			m.currentScreen = screenDetail
		case key.Matches(msg, keys.filter):
			m.list.filtering = true
			return m, m.list.filter.Focus()
		case key.Matches(msg, keys.newKey):
			m.form = newFormModel(nil)
			m.currentScreen = screenForm
			return m, textinput.Blink
		case key.Matches(msg, keys.delete):
			entry, ok := m.list.current()
			if !ok {
				return m, nil
			}
			m.showConfirm = true
			m.deleteConfirm.key = entry.Key
			m.pendingDelete = entry.Key
		case key.Matches(msg, keys.copy):
			entry, ok := m.list.current()
			if !ok || entry.Value == "" {
				return m, nil
			}
			return m, cmdCopyToClipboard(entry.Value)
		case key.Matches(msg, keys.reload):
			if m.list.loading {
				return m, nil
			}
			m.list.loading = true
			return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadKeys())
		case key.Matches(msg, keys.info):
			m.showInfo = true
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.list.loading {
			var cmd tea.Cmd
			m.list.spinner, cmd = m.list.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m consoleModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
		return m, nil
	case key.Matches(keyMsg, keys.edit):
		entry := m.detail.entry
		m.form = newFormModel(&entry)
		m.currentScreen = screenForm
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.deleteConfirm.key = m.detail.entry.Key
		m.pendingDelete = m.detail.entry.Key
		return m, nil
	case key.Matches(keyMsg, keys.copy):
		if m.detail.entry.Value == "" {
			return m, nil
		}
		return m, cmdCopyToClipboard(m.detail.entry.Value)
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m consoleModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = backFromForm(m.form.editing)
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form = focusNextForm(m.form)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form = focusPrevForm(m.form)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			entry := m.form.entry()
			if entry.Key == "" {
				m.showErrorf("Key is required")
				return m, nil
			}
			m.form.submitting = true
			return m, m.cmdSaveEntry(entry)
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

// ────────────────────────────────────────────────────────────────────────────
// Async commands
// ────────────────────────────────────────────────────────────────────────────

func (m consoleModel) cmdOpenSession(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		_, err := client.Login(ctx, creds)
		return sessionOpenedMsg{err: err}
	}
}

func (m consoleModel) cmdLoadKeys() tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		entries, err := client.Keys(ctx, "")
		return keysLoadedMsg{entries: entries, err: err}
	}
}

func (m consoleModel) cmdSaveEntry(entry models.ConfigKey) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		err := client.SetKeys(ctx, entry)
		return keySavedMsg{err: err}
	}
}

func (m consoleModel) cmdDeleteKey(configKey string) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		err := client.DeleteKey(ctx, configKey)
		return keyDeletedMsg{key: configKey, err: err}
	}
}

func (m consoleModel) cmdDaemonInfo() tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		info, err := client.Version(ctx)
		return daemonInfoMsg{info: info, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func backFromForm(editing bool) screen {
	if editing {
		return screenDetail
	}
	return screenList
}

func focusNextLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextForm(m formModel) formModel {
	if m.editing {
		return m
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevForm(m formModel) formModel {
	if m.editing {
		return m
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
