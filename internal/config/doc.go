// Package config provides bootstrap configuration for the rigconf daemon.
//
// The package uses a Provider interface to abstract configuration loading,
// with the primary implementation being filesystem-based configuration via
// YAML files. This config only locates the daemon's collaborators; the
// project files themselves use the rigconf section format and are handled
// by internal/project.
//
// # Configuration Structure
//
// Configuration is structured as follows:
//
//	socket:
//	  path: /var/run/rigconfd.socket     # Unix domain socket path
//	projects:
//	  dir: ~/.rigconf/projects           # project catalog directory
//	  settings_file: ~/.rigconf/settings.env
//	  fallback: default                  # loaded when nothing else applies
//
// # Basic Usage
//
// Load configuration using the default path (~/.rigconf/config.yaml):
//
//	provider := config.New()
//	cfg, err := provider.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration Validation
//
// The package performs validation of loaded configuration:
//   - Socket path must not be empty
//   - Projects dir and settings file must not be empty
//   - The fallback project name must pass project name validation
//
// # Default Configuration
//
// If no configuration file exists, the following defaults are used:
//   - Socket Path: /var/run/rigconfd.socket
//   - Projects Dir: ~/.rigconf/projects
//   - Settings File: ~/.rigconf/settings.env
//   - Fallback Project: default
//
// # Error Handling
//
// The package defines several error types:
//   - ErrInvalidConfig: Configuration validation failed
//   - ErrNoConfig: Configuration file not found (returns defaults)
//
// The package is designed to be extensible, allowing for additional
// configuration providers to be implemented by implementing the Provider
// interface.
package config
