// Package settings persists the user's window preferences and keeps the
// login autostart entry in sync with them.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"QobuzPlayer/internal/native"
)

// ErrAutostartUnsupported is returned where the OS has no per-user Run key.
var ErrAutostartUnsupported = errors.New("settings: autostart is only supported on Windows")

// LaunchMode is the window state the app starts in when launched at login.
type LaunchMode string

const (
	LaunchRestored        LaunchMode = "restored"
	LaunchMinimized       LaunchMode = "minimized"
	LaunchMinimizedToTray LaunchMode = "minimizedtotray"
	LaunchMaximized       LaunchMode = "maximized"
)

func (m LaunchMode) Valid() bool {
	switch m {
	case LaunchRestored, LaunchMinimized, LaunchMinimizedToTray, LaunchMaximized:
		return true
	}
	return false
}

// Arg returns the command-line switch selecting m, or "" for restored.
func (m LaunchMode) Arg() string {
	switch m {
	case LaunchMinimized:
		return "--minimized"
	case LaunchMinimizedToTray:
		return "--minimized-to-tray"
	case LaunchMaximized:
		return "--maximized"
	}
	return ""
}

// Settings is the content of settings.json.
type Settings struct {
	CloseToTray    bool       `json:"close_to_tray"`
	MinimizeToTray bool       `json:"minimize_to_tray"`
	LaunchOnLogin  bool       `json:"launch_on_login"`
	LaunchMode     LaunchMode `json:"launch_mode"`
}

// Default returns the settings used when nothing valid is stored.
func Default() Settings {
	return Settings{
		CloseToTray: true,
		LaunchMode:  LaunchRestored,
	}
}

// contentionDefaults is what PolicyFlags reports while a writer holds the lock.
var contentionDefaults = native.PolicyFlags{CloseToTray: true, MinimizeToTray: false}

// Autostart registers the app to run at login.
type Autostart interface {
	Enable(command string) error
	Disable() error
}

// Store holds the current settings in memory and writes them through to disk.
type Store struct {
	path      string
	autostart Autostart
	log       *slog.Logger

	mu  sync.RWMutex
	cur Settings
}

// DefaultPath returns <user config dir>/qobuz-player/settings.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "qobuz-player", "settings.json"), nil
}

// NewStore returns a store backed by path, with defaults until Load. A nil
// autostart uses the registry on Windows.
func NewStore(path string, autostart Autostart, log *slog.Logger) *Store {
	if autostart == nil {
		autostart = RunKey{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{path: path, autostart: autostart, log: log, cur: Default()}
}

// Load reads the file. A missing or unreadable file yields the defaults,
// matching the first start of the app.
func (s *Store) Load() Settings {
	loaded := Default()
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		s.log.Warn("reading settings failed, using defaults", "path", s.path, "error", err)
	default:
		if err := json.Unmarshal(data, &loaded); err != nil {
			s.log.Warn("parsing settings failed, using defaults", "path", s.path, "error", err)
			loaded = Default()
		}
	}
	if !loaded.LaunchMode.Valid() {
		loaded.LaunchMode = LaunchRestored
	}

	s.mu.Lock()
	s.cur = loaded
	s.mu.Unlock()
	return loaded
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Save validates next, writes it to disk and updates the autostart entry.
// The in-memory value changes only if the file was written.
func (s *Store) Save(next Settings) error {
	if !next.LaunchMode.Valid() {
		return fmt.Errorf("settings: unknown launch mode %q", next.LaunchMode)
	}

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("writing settings: %w", err)
	}
	s.cur = next
	s.mu.Unlock()

	return s.applyAutostart(next)
}

func (s *Store) applyAutostart(cfg Settings) error {
	var err error
	if cfg.LaunchOnLogin {
		var command string
		if command, err = Command(cfg.LaunchMode); err == nil {
			err = s.autostart.Enable(command)
		}
	} else {
		err = s.autostart.Disable()
	}
	if errors.Is(err, ErrAutostartUnsupported) {
		s.log.Debug("autostart not available", "launchOnLogin", cfg.LaunchOnLogin)
		return nil
	}
	if err != nil {
		return fmt.Errorf("updating autostart: %w", err)
	}
	return nil
}

// PolicyFlags reports the tray policy without blocking. It is called from
// the window procedure, so if a Save holds the lock it answers with the
// defaults instead of waiting.
func (s *Store) PolicyFlags() native.PolicyFlags {
	if !s.mu.TryRLock() {
		return contentionDefaults
	}
	defer s.mu.RUnlock()
	return native.PolicyFlags{
		MinimizeToTray: s.cur.MinimizeToTray,
		CloseToTray:    s.cur.CloseToTray,
	}
}

// Command returns the login command line for mode: the quoted executable
// path followed by the launch-mode switch.
func Command(mode LaunchMode) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return commandFor(exe, mode), nil
}

func commandFor(exe string, mode LaunchMode) string {
	cmd := `"` + exe + `"`
	if arg := mode.Arg(); arg != "" {
		cmd += " " + arg
	}
	return cmd
}

// LaunchModeFromFlags maps the command-line switches to a launch mode.
// Hiding to the tray wins over minimizing, which wins over maximizing.
func LaunchModeFromFlags(minimized, minimizedToTray, maximized bool) LaunchMode {
	switch {
	case minimizedToTray:
		return LaunchMinimizedToTray
	case minimized:
		return LaunchMinimized
	case maximized:
		return LaunchMaximized
	}
	return LaunchRestored
}
