package app

import (
	"context"
	"procdeck/internal/process"
	"procdeck/internal/tui/controller"
	"procdeck/internal/tui/model"
	"procdeck/pkg/logging"
	"time"
)

// shutdownTimeout bounds how long procdeck waits for children after the
// dashboard closed.
const shutdownTimeout = 5 * time.Second

const forceKillTimeout = time.Second

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, config *Config, services *Services) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Switch logging to channel-based system so procdeck's own log shows up
	// as a process in the dashboard
	logChan := logging.InitForTUI(logLevel(config))
	go process.Follow(ctx, services.Log, logChan)

	// Failures are logged and visible in the sidebar, the dashboard still opens
	_ = services.Store.StartAutostart(ctx)

	p := controller.NewProgram(ctx, services.Store, model.TUIConfig{
		Mouse:     config.ProcdeckConfig.MouseEnabled(),
		DebugMode: config.Debug(),
	})

	_, err := p.Run()

	// From here on log lines go to stderr again
	logging.CloseTUIChannel()
	if err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
	}

	shutdown(services.Store, shutdownTimeout)
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return err
}

// shutdown kills every process and waits for them to exit. Children still
// running after timeout are sent SIGKILL.
func shutdown(store *process.Store, timeout time.Duration) {
	store.KillAll()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := store.WaitAll(ctx); err == nil {
		return
	}

	logging.Warn("TUI-Lifecycle", "Some processes did not exit within %s, sending SIGKILL", timeout)
	store.ForceKillAll()
	ctx, cancel = context.WithTimeout(context.Background(), forceKillTimeout)
	defer cancel()
	if err := store.WaitAll(ctx); err != nil {
		logging.Error("TUI-Lifecycle", err, "Some processes survived SIGKILL")
	}
}
