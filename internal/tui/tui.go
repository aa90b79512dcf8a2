package tui

import (
	"context"

	"github.com/arbormail/arbormail/internal/adapter"
	tea "github.com/charmbracelet/bubbletea"
)

// Console is the interactive management console. It owns the terminal for
// the duration of [Console.Run] and talks to a running daemon through the
// management API client.
type Console struct {
	client adapter.ManagementClient
}

func New(client adapter.ManagementClient) *Console {
	return &Console{client: client}
}

// Run opens the console: the session screen first, then the config key
// browser. login pre-fills the admin account name when the operator supplied
// one through settings. Run blocks until the operator quits.
func (c *Console) Run(ctx context.Context, login string) error {
	model := newConsoleModel(ctx, c.client, login)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
