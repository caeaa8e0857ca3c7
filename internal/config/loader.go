package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	appDir     = "campusdesk"
	configFile = "config.json"
)

// ConfigPath returns ~/.config/campusdesk/config.json, honouring
// XDG_CONFIG_HOME.
func ConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, configFile)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", appDir, configFile)
	}
	return filepath.Join(home, ".config", appDir, configFile)
}

// Load reads the default config file. A missing file yields defaults.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads path over the defaults, then applies CAMPUSDESK_*
// environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		var fc fileConfig
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		if err := fc.mergeInto(cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	cfg.Log.Path = ExpandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
