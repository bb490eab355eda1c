package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"procdeck/internal/config"
	"procdeck/pkg/logging"

	"github.com/mattn/go-isatty"
)

// ErrNotATerminal is returned when the dashboard would draw into a pipe or file.
var ErrNotATerminal = errors.New("procdeck needs an interactive terminal, use `procdeck list` to inspect scripts")

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Application is the main application structure that bootstraps and runs procdeck
type Application struct {
	config   *Config
	services *Services
}

// NewApplication loads the configuration and creates the process store
func NewApplication(cfg *Config) (*Application, error) {
	// Initialize logging for CLI output (will be replaced for TUI mode)
	logging.InitForCLI(logLevel(cfg), os.Stderr)

	if err := LoadConfig(cfg); err != nil {
		return nil, err
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// LoadConfig loads the layered configuration into cfg and applies the
// runtime settings on top.
func LoadConfig(cfg *Config) error {
	procdeckCfg, err := config.LoadConfig(cfg.Settings.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load procdeck configuration")
		return fmt.Errorf("failed to load procdeck configuration: %w", err)
	}
	procdeckCfg = cfg.Settings.Apply(procdeckCfg)
	cfg.ProcdeckConfig = &procdeckCfg
	logging.Info("Bootstrap", "Loaded configuration from %s", procdeckCfg.ManifestPath)
	return nil
}

// Run starts the dashboard and blocks until it exits
func (a *Application) Run(ctx context.Context) error {
	if !isTerminal() {
		return ErrNotATerminal
	}
	return runTUIMode(ctx, a.config, a.services)
}

// Services returns the initialized services.
func (a *Application) Services() *Services {
	return a.services
}

func logLevel(cfg *Config) logging.LogLevel {
	if cfg.Debug() {
		return logging.LevelDebug
	}
	if cfg.ProcdeckConfig != nil {
		return logging.ParseLevel(cfg.ProcdeckConfig.LogLevel)
	}
	return logging.LevelInfo
}
