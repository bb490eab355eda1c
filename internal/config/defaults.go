package config

// GetDefaultConfig returns the configuration used before any file is read.
func GetDefaultConfig() ProcdeckConfig {
	mouse := true
	include := true
	return ProcdeckConfig{
		Shell:                 "sh",
		Mouse:                 &mouse,
		LogLevel:              "info",
		IncludePackageScripts: &include,
		Scripts:               map[string]ScriptDefinition{},
	}
}
