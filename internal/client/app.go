package client

import (
	"context"
	"fmt"
	"time"

	"github.com/arbormail/arbormail/internal/adapter"
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/tui"
)

const healthProbeTimeout = 5 * time.Second

// Config carries the knobs the console needs to reach a daemon.
type Config struct {
	// Address is the base URL of the management API.
	Address string

	// Login pre-fills the admin account name on the session screen.
	Login string

	// RequestTimeout bounds every management API request.
	RequestTimeout time.Duration
}

// App wires the management API client and the terminal console together.
type App struct {
	cfg     Config
	client  adapter.ManagementClient
	console *tui.Console
	log     *logger.Logger
}

func NewApp(cfg Config, log *logger.Logger) (*App, error) {
	mgmt, err := adapter.NewManagementClient(adapter.Config{
		Address: cfg.Address,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating management client: %w", err)
	}

	return &App{
		cfg:     cfg,
		client:  mgmt,
		console: tui.New(mgmt),
		log:     log,
	}, nil
}

// Run probes the daemon first so an unreachable address fails fast with a
// plain error instead of inside the alternate screen, then hands the
// terminal to the console until the operator quits.
func (a *App) Run() error {
	ctx := context.Background()

	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	if err := a.client.Health(probeCtx); err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", a.cfg.Address, err)
	}

	a.log.Info().Str("address", a.cfg.Address).Msg("opening console")
	return a.console.Run(ctx, a.cfg.Login)
}
