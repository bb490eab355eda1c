package app

import (
	"fmt"
	"procdeck/internal/process"
	"procdeck/pkg/logging"
)

// Services holds the process store and the processes procdeck adds itself
type Services struct {
	Store *process.Store
	Log   *process.Process
}

// InitializeServices creates the process store from the loaded configuration
func InitializeServices(cfg *Config) (*Services, error) {
	scripts, err := cfg.ProcdeckConfig.ProcessScripts()
	if err != nil {
		return nil, fmt.Errorf("failed to read scripts: %w", err)
	}

	store := process.NewStore(cfg.ProcdeckConfig.Shell, scripts...)
	log := process.NewLogProcess()
	store.AddProcess(log)

	logging.Debug("Bootstrap", "Registered %d scripts from %s", len(scripts), cfg.ProcdeckConfig.ManifestPath)
	return &Services{Store: store, Log: log}, nil
}
