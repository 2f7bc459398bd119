package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	defaultURL   = "https://play.qobuz.com"
	defaultTitle = "Qobuz Player"

	thumbClickScript   = "script"
	thumbClickMediaKey = "mediakey"
)

// AppConfig holds the shell's own configuration. User preferences edited
// from the UI live in settings.json instead.
type AppConfig struct {
	URL              string `json:"url"`
	Title            string `json:"title"`
	LogLevel         string `json:"logLevel"`
	WindowWidth      int    `json:"windowWidth"`
	WindowHeight     int    `json:"windowHeight"`
	ThumbClickPolicy string `json:"thumbClickPolicy"` // "script" (default) or "mediakey"
	TrayNotice       *bool  `json:"trayNotice"`       // nil = true
}

// IsTrayNotice reports whether hiding to the tray shows a one-time notice.
func (c *AppConfig) IsTrayNotice() bool {
	return c.TrayNotice == nil || *c.TrayNotice
}

var (
	appDataDir     string
	appDataDirOnce sync.Once
)

// DefaultConfig returns config with default values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		URL:              defaultURL,
		Title:            defaultTitle,
		LogLevel:         "error",
		WindowWidth:      1280,
		WindowHeight:     800,
		ThumbClickPolicy: thumbClickScript,
	}
}

// AppDataDir returns <user config dir>/qobuz-player, creating it if needed.
func AppDataDir() string {
	appDataDirOnce.Do(func() {
		dir, err := os.UserConfigDir()
		if err != nil {
			if exe, err2 := os.Executable(); err2 == nil {
				appDataDir = filepath.Dir(exe)
			} else {
				appDataDir = "."
			}
			return
		}
		appDataDir = filepath.Join(dir, "qobuz-player")
		os.MkdirAll(appDataDir, 0755)
	})
	return appDataDir
}

// DataPath returns the full path for a file inside the data directory.
func DataPath(elem ...string) string {
	parts := append([]string{AppDataDir()}, elem...)
	return filepath.Join(parts...)
}

func configPath() string {
	return DataPath("config.json")
}

// LoadConfig reads config.json, falling back to defaults if it is missing
// or unreadable.
func LoadConfig() *AppConfig {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config.json is invalid, using defaults: %v\n", err)
		return DefaultConfig()
	}

	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = 1280
	}
	if cfg.WindowHeight <= 0 {
		cfg.WindowHeight = 800
	}
	if cfg.ThumbClickPolicy != thumbClickMediaKey {
		cfg.ThumbClickPolicy = thumbClickScript
	}

	return cfg
}

// SaveConfig writes config.json.
func SaveConfig(cfg *AppConfig) error {
	os.MkdirAll(AppDataDir(), 0755)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0644)
}
