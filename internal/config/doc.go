// Package config provides configuration management for procdeck.
//
// Configuration is layered. Later sources override earlier ones:
//
//  1. Default configuration (embedded in the binary)
//
//  2. User configuration (~/.config/procdeck/config.yaml)
//     - Personal preferences such as the shell or mouse support
//     - May declare scripts available in every project
//
//  3. Project manifest, found by walking up from the working directory
//     - procdeck.yaml, or
//     - package.json, using its "procdeck" section and its "scripts"
//
// # Manifest Structure
//
//	shell: bash
//	includePackageScripts: true
//	scripts:
//	  api:
//	    script: go run ./cmd/api
//	    autostart: true
//	    type: service
//	    docs: docs/api.md
//	  migrate:
//	    script: make migrate
//	    type: task
//
// Script types are service, task and script (the default). Docs is a path
// relative to the manifest or inline markdown.
//
// In a package.json the same structure lives under the "procdeck" key. The
// top-level "scripts" are added as plain scripts unless the section sets
// includePackageScripts to false. Declared scripts win over package scripts
// of the same name.
//
// Runtime settings (--config, --debug, --no-mouse, --shell) are bound with
// viper and may also be given as PROCDECK_CONFIG, PROCDECK_DEBUG,
// PROCDECK_NO_MOUSE and PROCDECK_SHELL.
package config
