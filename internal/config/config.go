// Package config loads the application configuration from the user's
// config directory, filling in defaults for anything missing.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects where the SQLite database lives.
type DatabaseConfig struct {
	// Path to the database file; empty means ~/.quadro/quadro.db
	Path string `yaml:"path"`
}

// SessionConfig controls session token issuance and persistence.
type SessionConfig struct {
	// Secret signs session tokens. Overridable via QUADRO_SESSION_SECRET.
	Secret string `yaml:"secret"`
	// TTLHours is how long a session token stays valid.
	TTLHours int `yaml:"ttl_hours"`
	// Path of the persisted session token; empty means ~/.quadro/session
	Path string `yaml:"path"`
}

// LogConfig controls the log file location.
type LogConfig struct {
	// Path of the log file; empty means ~/.quadro/logs/quadro.log
	Path string `yaml:"path"`
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	config := &Config{}

	configPath, err := getConfigPath()
	if err == nil {
		if data, readErr := os.ReadFile(configPath); readErr == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, err
			}
		}
	}

	config.applyDefaults()
	return config, nil
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// SessionSecret returns the configured signing secret, preferring the
// QUADRO_SESSION_SECRET environment variable.
func (c *Config) SessionSecret() []byte {
	if env := os.Getenv("QUADRO_SESSION_SECRET"); env != "" {
		return []byte(env)
	}
	return []byte(c.Session.Secret)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "quadro", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "quadro", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Session.Secret == "" {
		c.Session.Secret = "quadro-dev-secret-change-me"
	}
	if c.Session.TTLHours <= 0 {
		c.Session.TTLHours = 24 * 7
	}
	if c.Session.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Session.Path = filepath.Join(home, ".quadro", "session")
		}
	}
}
