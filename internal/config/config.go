// Package config provides bootstrap configuration loading and validation
// for the rigconf daemon. It handles reading configuration from files,
// providing defaults, and ensuring all required settings are properly set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lc/rigconf/internal/filesys"
	"github.com/lc/rigconf/internal/project"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNoConfig is returned when the configuration file is not found.
	ErrNoConfig = errors.New("configuration file not found")
)

const (
	// DefaultSocketPath is the default path for the Unix socket.
	DefaultSocketPath = "/var/run/rigconfd.socket"
	// DefaultConfigPath is the default path for the configuration file,
	// relative to the user's home directory.
	DefaultConfigPath = ".rigconf/config.yaml"
	// DefaultFallbackProject is loaded when no default is persisted and the
	// catalog is empty.
	DefaultFallbackProject = "default"
)

// Config holds the daemon's bootstrap configuration.
type Config struct {
	Socket   SocketConfig   `yaml:"socket"`
	Projects ProjectsConfig `yaml:"projects"`
}

// SocketConfig holds socket-related configuration.
type SocketConfig struct {
	Path string `yaml:"path"`
}

// ProjectsConfig locates the project catalog and the settings store.
type ProjectsConfig struct {
	Dir          string `yaml:"dir"`
	SettingsFile string `yaml:"settings_file"`
	Fallback     string `yaml:"fallback"`
}

// Provider defines the interface for loading configuration.
type Provider interface {
	Load() (*Config, error)
}

// FSProvider implements Provider using the local filesystem.
type FSProvider struct {
	fs   filesys.BootFS
	path string
}

// Verify FSProvider implements Provider interface.
var _ Provider = (*FSProvider)(nil)

// New creates a new configuration provider using the default configuration
// path under the user's home directory. If the home directory cannot be
// determined, it falls back to the current directory.
func New() Provider {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine home directory: %v\n", err)
		home = ""
	}
	return NewWithPath(filesys.OS(), filepath.Join(home, DefaultConfigPath))
}

// NewWithPath creates a new provider with a specific config path.
// It allows specifying both the filesystem implementation and the path to use.
func NewWithPath(fs filesys.BootFS, path string) Provider {
	return &FSProvider{
		fs:   fs,
		path: path,
	}
}

// Default returns a default configuration with preset values.
// This is used when no configuration file exists.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	base := filepath.Join(home, ".rigconf")
	return &Config{
		Socket: SocketConfig{
			Path: DefaultSocketPath,
		},
		Projects: ProjectsConfig{
			Dir:          filepath.Join(base, "projects"),
			SettingsFile: filepath.Join(base, "settings.env"),
			Fallback:     DefaultFallbackProject,
		},
	}
}

// Load loads the configuration from the specified path.
func (p *FSProvider) Load() (*Config, error) {
	_ = p.ensureConfigDir()

	cfg, err := p.loadAndParse()
	if err != nil {
		if errors.Is(err, ErrNoConfig) {
			return Default(), nil
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Validate checks the configuration to ensure all required fields are set.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Socket.Path) == "" {
		return errors.New("socket path cannot be empty")
	}
	if strings.TrimSpace(c.Projects.Dir) == "" {
		return errors.New("projects dir cannot be empty")
	}
	if strings.TrimSpace(c.Projects.SettingsFile) == "" {
		return errors.New("settings file cannot be empty")
	}
	if err := project.ValidateName(c.Projects.Fallback); err != nil {
		return fmt.Errorf("fallback project: %v", err)
	}
	return nil
}

func (p *FSProvider) ensureConfigDir() error {
	dir := filepath.Dir(p.path)
	if _, err := p.fs.Stat(dir); os.IsNotExist(err) {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return nil
}

func (p *FSProvider) loadAndParse() (*Config, error) {
	f, err := p.fs.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoConfig
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}

	return cfg, nil
}
