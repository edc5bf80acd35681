package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	ServerURL      string        `yaml:"server_url" mapstructure:"server_url"`           // Base URL of the task API
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"` // Transport timeout per call
	DefaultGroup   string        `yaml:"default_group" mapstructure:"default_group"`     // Group new tasks go to
	ConfirmDelete  bool          `yaml:"confirm_delete" mapstructure:"confirm_delete"`   // Require confirmation for delete
	SerializeOps   bool          `yaml:"serialize_ops" mapstructure:"serialize_ops"`     // One in-flight call per operation kind

	// Logging configuration
	LogLevel   string `yaml:"log_level" mapstructure:"log_level"`     // DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" mapstructure:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" mapstructure:"log_console"` // Enable console logging
}

// Dir returns ~/.taskdeck
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskdeck"), nil
}

// Path returns the default config file location
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	logPath := ""
	if dir, err := Dir(); err == nil {
		logPath = filepath.Join(dir, "logs", "taskdeck.log")
	}

	return &Config{
		ServerURL:      "http://localhost:8080",
		RequestTimeout: 30 * time.Second,
		DefaultGroup:   "general",
		ConfirmDelete:  true,
		LogLevel:       "INFO",
		LogFile:        logPath,
	}
}

func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server_url", defaults.ServerURL)
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("default_group", defaults.DefaultGroup)
	v.SetDefault("confirm_delete", defaults.ConfirmDelete)
	v.SetDefault("serialize_ops", defaults.SerializeOps)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("log_console", defaults.LogConsole)
	return v
}

// Load loads config from ~/.taskdeck/config.yaml
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the YAML file at path. A missing file yields defaults.
// TASKDECK_* environment variables override both.
func LoadFrom(path string) (*Config, error) {
	v := newViper(DefaultConfig())

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	return cfg, nil
}

// Save saves config to ~/.taskdeck/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config as YAML, creating the parent directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
