package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "PROCDECK"

// Settings are the runtime options of a procdeck invocation.
type Settings struct {
	ConfigPath string
	Debug      bool
	NoMouse    bool
	Shell      string
}

// BindSettings binds flags into a viper instance that also reads PROCDECK_*
// environment variables. Flags set on the command line win over the
// environment.
func BindSettings(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	return v, nil
}

// SettingsFrom reads the bound settings.
func SettingsFrom(v *viper.Viper) Settings {
	return Settings{
		ConfigPath: v.GetString("config"),
		Debug:      v.GetBool("debug"),
		NoMouse:    v.GetBool("no-mouse"),
		Shell:      v.GetString("shell"),
	}
}

// Apply overrides the configuration with the runtime settings.
func (s Settings) Apply(c ProcdeckConfig) ProcdeckConfig {
	if s.Shell != "" {
		c.Shell = s.Shell
	}
	if s.NoMouse {
		off := false
		c.Mouse = &off
	}
	if s.Debug {
		c.LogLevel = "debug"
	}
	return c
}
