package config

import "errors"

// ErrNoManifest is returned when no procdeck.yaml or package.json is found
// above the working directory.
var ErrNoManifest = errors.New("no procdeck.yaml or package.json found")

// ProcdeckConfig is the merged configuration of procdeck.
type ProcdeckConfig struct {
	// Shell runs every script as `<shell> -c <script>`.
	Shell string `yaml:"shell,omitempty" json:"shell,omitempty"`
	// Mouse enables mouse tracking in the dashboard.
	Mouse *bool `yaml:"mouse,omitempty" json:"mouse,omitempty"`
	// LogLevel is the minimum level of procdeck's own log.
	LogLevel string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	// IncludePackageScripts adds the package.json scripts next to the
	// declared ones. Only meaningful for package.json manifests.
	IncludePackageScripts *bool `yaml:"includePackageScripts,omitempty" json:"includePackageScripts,omitempty"`
	// Scripts maps script names to their definitions.
	Scripts map[string]ScriptDefinition `yaml:"scripts,omitempty" json:"scripts,omitempty"`

	// ManifestPath is the project manifest the scripts were loaded from.
	ManifestPath string `yaml:"-" json:"-"`
}

// ScriptDefinition declares one script.
type ScriptDefinition struct {
	Script    string `yaml:"script" json:"script"`
	Autostart bool   `yaml:"autostart,omitempty" json:"autostart,omitempty"`
	Type      string `yaml:"type,omitempty" json:"type,omitempty"`
	Docs      string `yaml:"docs,omitempty" json:"docs,omitempty"`
}

// MouseEnabled reports whether mouse tracking is on.
func (c ProcdeckConfig) MouseEnabled() bool {
	return c.Mouse == nil || *c.Mouse
}

// IncludesPackageScripts reports whether package.json scripts are added.
func (c ProcdeckConfig) IncludesPackageScripts() bool {
	return c.IncludePackageScripts == nil || *c.IncludePackageScripts
}
