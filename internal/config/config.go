package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultServerAddr is where `quadro serve` listens
	DefaultServerAddr = "127.0.0.1:8420"

	DefaultRequestTimeoutSeconds = 10
	DefaultNotificationSeconds   = 5
)

// Config represents the application configuration
type Config struct {
	// DatabasePath is the SQLite file used by the server and local mode.
	// Empty means ~/.quadro/quadro.db.
	DatabasePath string `yaml:"database_path" toml:"database_path"`

	// ServerAddr is the listen address for `quadro serve`
	ServerAddr string `yaml:"server_addr" toml:"server_addr"`

	// ServerURL points the board at a running server; empty runs in-process
	ServerURL string `yaml:"server_url" toml:"server_url"`

	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" toml:"request_timeout_seconds"`
	NotificationSeconds   int `yaml:"notification_seconds" toml:"notification_seconds"`

	// RefreshSeconds reloads the board periodically; 0 disables it
	RefreshSeconds int `yaml:"refresh_seconds" toml:"refresh_seconds"`

	KeyMappings KeyMappings `yaml:"key_mappings" toml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme" toml:"theme"`
}

// Default returns a config with every value set to its default
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// RequestTimeout is the per-request deadline used by remote clients
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// NotificationTTL is how long a notification stays visible
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationSeconds) * time.Second
}

// RefreshInterval is the periodic reload interval, zero when disabled
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// loadThemeFile loads and merges theme from QUADRO_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("QUADRO_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyEnv applies QUADRO_* overrides on top of the file values
func applyEnv(config *Config) {
	if v := os.Getenv("QUADRO_SERVER_URL"); v != "" {
		config.ServerURL = v
	}
	if v := os.Getenv("QUADRO_DB_PATH"); v != "" {
		config.DatabasePath = v
	}
	if v := os.Getenv("QUADRO_SERVER_ADDR"); v != "" {
		config.ServerAddr = v
	}
	if v := os.Getenv("QUADRO_REFRESH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			config.RefreshSeconds = n
		}
	}
}

// Load loads config from the user's config directory.
// config.yaml wins over config.toml; defaults are used when neither exists.
func Load() (*Config, error) {
	var config Config

	configPath, err := getConfigPath()
	if err == nil {
		if err := readFile(&config, configPath); err != nil {
			return nil, err
		}
	}

	loadThemeFile(&config)
	applyEnv(&config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// readFile decodes path, or its TOML sibling when path does not exist.
// Neither existing is not an error.
func readFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err == nil {
		return yaml.Unmarshal(data, config)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	tomlPath := filepath.Join(filepath.Dir(path), "config.toml")
	if _, err := toml.DecodeFile(tomlPath, config); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "quadro", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "quadro", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = DefaultServerAddr
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if c.NotificationSeconds <= 0 {
		c.NotificationSeconds = DefaultNotificationSeconds
	}
	if c.RefreshSeconds < 0 {
		c.RefreshSeconds = 0
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
