// Package config loads campusdesk settings from JSON with environment
// overrides.
package config

import (
	"time"
)

// Config is the root configuration structure.
type Config struct {
	API     APIConfig     `json:"api"`
	Storage StorageConfig `json:"storage"`
	Sheet   SheetConfig   `json:"sheet"`
	History HistoryConfig `json:"history"`
	Voice   VoiceConfig   `json:"voice"`
	UI      UIConfig      `json:"ui"`
	Keymap  KeymapConfig  `json:"keymap"`
	Log     LogConfig     `json:"log"`
}

// APIConfig points at the assistant backend.
type APIConfig struct {
	BaseURL string        `json:"baseURL" env:"CAMPUSDESK_API_BASE_URL"`
	Timeout time.Duration `json:"timeout" env:"CAMPUSDESK_API_TIMEOUT"`
}

// StorageConfig locates the key-value database.
type StorageConfig struct {
	Path string `json:"path" env:"CAMPUSDESK_STORAGE_PATH"` // supports ~ expansion
}

// SheetConfig tunes how terminal mouse input maps onto sheet gestures.
type SheetConfig struct {
	// RowUnits is the gesture distance of one terminal row.
	RowUnits float64 `json:"rowUnits" env:"CAMPUSDESK_SHEET_ROW_UNITS"`
	// WheelStep is the scroll delta reported per wheel notch.
	WheelStep float64 `json:"wheelStep" env:"CAMPUSDESK_SHEET_WHEEL_STEP"`
	// StartCollapsed opens the app with the tools hidden.
	StartCollapsed bool `json:"startCollapsed" env:"CAMPUSDESK_SHEET_START_COLLAPSED"`
}

// HistoryConfig controls session grouping.
type HistoryConfig struct {
	SessionGap time.Duration `json:"sessionGap" env:"CAMPUSDESK_HISTORY_SESSION_GAP"`
}

// VoiceConfig configures the external speech recognizer.
type VoiceConfig struct {
	Command []string `json:"command" env:"CAMPUSDESK_VOICE_COMMAND" envSeparator:" "`
	Lang    string   `json:"lang" env:"CAMPUSDESK_VOICE_LANG"`
}

// UIConfig configures appearance.
type UIConfig struct {
	Theme string `json:"theme" env:"CAMPUSDESK_THEME"` // "light" or "dark"; empty uses the stored preference
}

// KeymapConfig holds user key overrides, key -> command ID.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Path  string `json:"path" env:"CAMPUSDESK_LOG_PATH"`
	Debug bool   `json:"debug" env:"CAMPUSDESK_DEBUG"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:4000/api",
			Timeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Path: "~/.local/share/campusdesk/campusdesk.db",
		},
		Sheet: SheetConfig{
			RowUnits:  16,
			WheelStep: 15,
		},
		History: HistoryConfig{
			SessionGap: 30 * time.Minute,
		},
		Voice: VoiceConfig{
			Lang: "en-IN",
		},
		Log: LogConfig{
			Path: "~/.local/share/campusdesk/campusdesk.log",
		},
	}
}

// Validate repairs out-of-range values.
func (c *Config) Validate() error {
	d := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.Storage.Path == "" {
		c.Storage.Path = d.Storage.Path
	}
	if c.Sheet.RowUnits <= 0 {
		c.Sheet.RowUnits = d.Sheet.RowUnits
	}
	if c.Sheet.WheelStep <= 0 {
		c.Sheet.WheelStep = d.Sheet.WheelStep
	}
	if c.History.SessionGap <= 0 {
		c.History.SessionGap = d.History.SessionGap
	}
	if c.Voice.Lang == "" {
		c.Voice.Lang = d.Voice.Lang
	}
	switch c.UI.Theme {
	case "", "light", "dark":
	default:
		c.UI.Theme = ""
	}
	return nil
}
