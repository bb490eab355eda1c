package app

import (
	"procdeck/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Runtime settings from flags and environment
	Settings config.Settings

	// Loaded manifest and user configuration
	ProcdeckConfig *config.ProcdeckConfig
}

// NewConfig creates a new application configuration
func NewConfig(settings config.Settings) *Config {
	return &Config{Settings: settings}
}

// Debug reports whether debug logging was requested.
func (c *Config) Debug() bool {
	return c.Settings.Debug
}
