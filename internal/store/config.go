package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"

	DefaultWebAddr  = "127.0.0.1:3340"
	DefaultLogLevel = "info"
)

type Config struct {
	// DataDir holds promptboard.sqlite, ui_state.json and logs/. Defaults to <config dir>/data.
	DataDir string `yaml:"data_dir,omitempty"`
	// StartSlot is used when no UI state has been saved yet.
	StartSlot int `yaml:"start_slot,omitempty"`

	Log LogConfig `yaml:"log"`
	Web WebConfig `yaml:"web"`
	TUI TUIConfig `yaml:"tui"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	// File defaults to <data dir>/logs/promptboard.log.
	File string `yaml:"file,omitempty"`
}

type WebConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

type TUIConfig struct {
	// Theme is one of auto|light|dark.
	Theme string `yaml:"theme,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		StartSlot: 1,
		Log:       LogConfig{Level: DefaultLogLevel},
		Web:       WebConfig{Addr: DefaultWebAddr},
		TUI:       TUIConfig{Theme: "auto"},
	}
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.promptboard).
	if v := strings.TrimSpace(os.Getenv("PROMPTBOARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".promptboard"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig reads config.yaml. A missing file yields DefaultConfig; a malformed one is an error.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if ValidSlot(c.StartSlot) != nil {
		c.StartSlot = 1
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = DefaultLogLevel
	}
	if strings.TrimSpace(c.Web.Addr) == "" {
		c.Web.Addr = DefaultWebAddr
	}
	switch strings.ToLower(strings.TrimSpace(c.TUI.Theme)) {
	case "light", "dark":
		c.TUI.Theme = strings.ToLower(strings.TrimSpace(c.TUI.Theme))
	default:
		c.TUI.Theme = "auto"
	}
}

// ResolveDataDir returns the configured data dir, or <config dir>/data.
func (c *Config) ResolveDataDir() (string, error) {
	if d := strings.TrimSpace(c.DataDir); d != "" {
		if strings.HasPrefix(d, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			d = filepath.Join(home, d[2:])
		}
		return filepath.Clean(d), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}
