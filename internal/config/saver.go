package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// fileConfig is the on-disk shape. Durations are strings ("15s", "30m").
type fileConfig struct {
	API     fileAPIConfig     `json:"api"`
	Storage StorageConfig     `json:"storage"`
	Sheet   fileSheetConfig   `json:"sheet"`
	History fileHistoryConfig `json:"history"`
	Voice   VoiceConfig       `json:"voice"`
	UI      UIConfig          `json:"ui"`
	Keymap  KeymapConfig      `json:"keymap"`
	Log     LogConfig         `json:"log"`
}

type fileAPIConfig struct {
	BaseURL string `json:"baseURL,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

type fileSheetConfig struct {
	RowUnits       *float64 `json:"rowUnits,omitempty"`
	WheelStep      *float64 `json:"wheelStep,omitempty"`
	StartCollapsed *bool    `json:"startCollapsed,omitempty"`
}

type fileHistoryConfig struct {
	SessionGap string `json:"sessionGap,omitempty"`
}

// toFileConfig converts Config to the JSON-serializable format.
func toFileConfig(cfg *Config) fileConfig {
	return fileConfig{
		API: fileAPIConfig{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout.String(),
		},
		Storage: cfg.Storage,
		Sheet: fileSheetConfig{
			RowUnits:       &cfg.Sheet.RowUnits,
			WheelStep:      &cfg.Sheet.WheelStep,
			StartCollapsed: &cfg.Sheet.StartCollapsed,
		},
		History: fileHistoryConfig{
			SessionGap: cfg.History.SessionGap.String(),
		},
		Voice:  cfg.Voice,
		UI:     cfg.UI,
		Keymap: cfg.Keymap,
		Log:    cfg.Log,
	}
}

// mergeInto applies the values present in fc onto cfg.
func (fc fileConfig) mergeInto(cfg *Config) error {
	if fc.API.BaseURL != "" {
		cfg.API.BaseURL = fc.API.BaseURL
	}
	if fc.API.Timeout != "" {
		d, err := time.ParseDuration(fc.API.Timeout)
		if err != nil {
			return fmt.Errorf("config: api.timeout: %w", err)
		}
		cfg.API.Timeout = d
	}
	if fc.Storage.Path != "" {
		cfg.Storage.Path = fc.Storage.Path
	}
	if fc.Sheet.RowUnits != nil {
		cfg.Sheet.RowUnits = *fc.Sheet.RowUnits
	}
	if fc.Sheet.WheelStep != nil {
		cfg.Sheet.WheelStep = *fc.Sheet.WheelStep
	}
	if fc.Sheet.StartCollapsed != nil {
		cfg.Sheet.StartCollapsed = *fc.Sheet.StartCollapsed
	}
	if fc.History.SessionGap != "" {
		d, err := time.ParseDuration(fc.History.SessionGap)
		if err != nil {
			return fmt.Errorf("config: history.sessionGap: %w", err)
		}
		cfg.History.SessionGap = d
	}
	if len(fc.Voice.Command) > 0 {
		cfg.Voice.Command = fc.Voice.Command
	}
	if fc.Voice.Lang != "" {
		cfg.Voice.Lang = fc.Voice.Lang
	}
	if fc.UI.Theme != "" {
		cfg.UI.Theme = fc.UI.Theme
	}
	if len(fc.Keymap.Overrides) > 0 {
		cfg.Keymap.Overrides = fc.Keymap.Overrides
	}
	if fc.Log.Path != "" {
		cfg.Log.Path = fc.Log.Path
	}
	if fc.Log.Debug {
		cfg.Log.Debug = true
	}
	return nil
}

// SaveTo writes cfg as indented JSON to path.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(toFileConfig(cfg), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
