// Package config handles the client configuration directory and file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the yaml configuration filename.
	ConfigFile = "config.yaml"

	// TokenFile is the persisted bearer token filename.
	TokenFile = "token.json"

	// UserFile is the cached identity filename.
	UserFile = "user.json"

	// DefaultServerURL is used when no configuration is present.
	DefaultServerURL = "http://localhost:8080/api"
)

// Config holds client settings loaded from config.yaml.
type Config struct {
	// ServerURL is the base URL of the taskboard API.
	ServerURL string `yaml:"server_url"`

	// Theme selects the glamour style for markdown rendering.
	Theme string `yaml:"theme"`

	// Dir is the configuration directory; not serialized.
	Dir string `yaml:"-"`
}

// DefaultDir returns the configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Load reads config.yaml from dir, falling back to defaults when the file is
// absent. The TASKBOARD_SERVER environment variable overrides server_url.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	cfg := &Config{
		ServerURL: DefaultServerURL,
		Theme:     "dark",
		Dir:       dir,
	}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if env := strings.TrimSpace(os.Getenv("TASKBOARD_SERVER")); env != "" {
		cfg.ServerURL = env
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}
	cfg.Dir = dir
	return cfg, nil
}

// Save writes config.yaml, creating the directory if needed.
func (c *Config) Save() error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.Dir, ConfigFile), data, 0o644)
}

// EnsureDir creates the config directory with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0o700)
}

// TokenPath returns the path of the persisted bearer token.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// UserPath returns the path of the cached identity.
func (c *Config) UserPath() string {
	return filepath.Join(c.Dir, UserFile)
}

// LogPath returns the client log file path.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, "taskboard.log")
}
