package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"procdeck/internal/process"
	"procdeck/pkg/logging"
	"slices"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/procdeck"
	configFileName   = "config.yaml"
	manifestFileName = "procdeck.yaml"
	packageFileName  = "package.json"
	packageSection   = "procdeck"
)

// LoadConfig loads the procdeck configuration by layering default, user and
// project settings. manifestPath selects the project manifest; when empty it
// is searched upward from the working directory.
func LoadConfig(manifestPath string) (ProcdeckConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User configuration is optional
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return ProcdeckConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
	}

	// 3. The project manifest is required
	if manifestPath == "" {
		wd, err := osGetwd()
		if err != nil {
			return ProcdeckConfig{}, fmt.Errorf("could not determine working directory: %w", err)
		}
		manifestPath, err = FindManifest(wd)
		if err != nil {
			return ProcdeckConfig{}, err
		}
	}
	manifestPath, err = filepath.Abs(manifestPath)
	if err != nil {
		return ProcdeckConfig{}, err
	}

	var project ProcdeckConfig
	if filepath.Base(manifestPath) == packageFileName {
		project, err = loadPackageJSON(manifestPath)
	} else {
		project, err = loadConfigFromFile(manifestPath)
	}
	if err != nil {
		return ProcdeckConfig{}, fmt.Errorf("error loading manifest %s: %w", manifestPath, err)
	}
	config = mergeConfigs(config, project)
	config.ManifestPath = manifestPath

	logging.Debug("Config", "Loaded %d scripts from %s", len(config.Scripts), manifestPath)
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// FindManifest walks upward from dir to the first directory holding a
// procdeck.yaml or a package.json and returns that file's path.
func FindManifest(dir string) (string, error) {
	for {
		for _, name := range []string{manifestFileName, packageFileName} {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoManifest
		}
		dir = parent
	}
}

// loadConfigFromFile loads a ProcdeckConfig from a YAML file.
func loadConfigFromFile(filePath string) (ProcdeckConfig, error) {
	var config ProcdeckConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return ProcdeckConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ProcdeckConfig{}, err
	}
	return config, nil
}

type packageManifest struct {
	Scripts  map[string]any  `json:"scripts"`
	Procdeck *ProcdeckConfig `json:"procdeck"`
}

// loadPackageJSON reads the procdeck section of a package.json and adds its
// scripts. Non-string script values are skipped.
func loadPackageJSON(filePath string) (ProcdeckConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return ProcdeckConfig{}, err
	}
	var pkg packageManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ProcdeckConfig{}, err
	}

	var config ProcdeckConfig
	if pkg.Procdeck != nil {
		config = *pkg.Procdeck
	}
	if pkg.Procdeck != nil && !config.IncludesPackageScripts() {
		return config, nil
	}

	scripts := make(map[string]ScriptDefinition, len(pkg.Scripts)+len(config.Scripts))
	for name, value := range pkg.Scripts {
		command, ok := value.(string)
		if !ok {
			continue
		}
		scripts[name] = ScriptDefinition{Script: command, Type: string(process.TypeScript)}
	}
	maps.Copy(scripts, config.Scripts)
	config.Scripts = scripts
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay ProcdeckConfig) ProcdeckConfig {
	merged := base

	if overlay.Shell != "" {
		merged.Shell = overlay.Shell
	}
	if overlay.Mouse != nil {
		merged.Mouse = overlay.Mouse
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	if overlay.IncludePackageScripts != nil {
		merged.IncludePackageScripts = overlay.IncludePackageScripts
	}

	// Scripts with the same name are replaced
	merged.Scripts = make(map[string]ScriptDefinition, len(base.Scripts)+len(overlay.Scripts))
	maps.Copy(merged.Scripts, base.Scripts)
	maps.Copy(merged.Scripts, overlay.Scripts)

	return merged
}

// ProcessScripts converts the declared scripts into process definitions ordered by
// name. Docs paths are resolved against the manifest directory.
func (c ProcdeckConfig) ProcessScripts() ([]process.Script, error) {
	root := ""
	if c.ManifestPath != "" {
		root = filepath.Dir(c.ManifestPath)
	}

	out := make([]process.Script, 0, len(c.Scripts))
	for _, name := range slices.Sorted(maps.Keys(c.Scripts)) {
		def := c.Scripts[name]
		if def.Script == "" {
			return nil, fmt.Errorf("script %q has no command", name)
		}
		typ, err := process.ParseType(def.Type)
		if err != nil {
			return nil, fmt.Errorf("script %q: %w", name, err)
		}
		out = append(out, process.Script{
			Name:      name,
			Command:   def.Script,
			Type:      typ,
			Autostart: def.Autostart,
			Docs:      resolveDocs(root, def.Docs),
		})
	}
	return out, nil
}

// resolveDocs returns the docs file path when it exists, otherwise the raw
// value which is shown as inline markdown.
func resolveDocs(root, docs string) string {
	if docs == "" {
		return ""
	}
	path := docs
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, docs)
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return docs
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
