package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const appName = "tpdf"

// Config holds tpdf user configuration.
type Config struct {
	Theme         string `json:"theme"`
	HistoryFile   string `json:"history_file"` // empty means <data dir>/history.json
	LogLevel      string `json:"log_level"`    // debug, info, warn, error
	MenuTimeoutMS int    `json:"menu_timeout_ms"`
	path          string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:         "default",
		LogLevel:      "info",
		MenuTimeoutMS: 2000,
	}
}

// MenuTimeout returns how long the menu bar stays up after the pointer leaves it.
func (c *Config) MenuTimeout() time.Duration {
	if c.MenuTimeoutMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.MenuTimeoutMS) * time.Millisecond
}

// HistoryPath resolves the history file location.
func (c *Config) HistoryPath() (string, error) {
	if c.HistoryFile != "" {
		return c.HistoryFile, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}

// LoadConfig loads configuration from the standard config directory.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(filepath.Join(dir, "config.json"))
}

// LoadConfigFrom loads configuration from path, writing the defaults there
// if the file does not exist yet.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Save default config.
			cfg.Save()
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.path = path
	return &cfg, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o644)
}

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	return platformDir("XDG_DATA_HOME", ".local", "share")
}

func configDir() (string, error) {
	return platformDir("XDG_CONFIG_HOME", ".config")
}

// platformDir resolves the per-OS application directory. On Linux and the
// BSDs xdgVar wins, falling back to $HOME joined with fallback.
func platformDir(xdgVar string, fallback ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, appName)
		} else {
			dir = filepath.Join(home, "."+appName)
		}
	default:
		if xdg := os.Getenv(xdgVar); xdg != "" {
			dir = filepath.Join(xdg, appName)
		} else {
			dir = filepath.Join(append(append([]string{home}, fallback...), appName)...)
		}
	}

	return dir, nil
}
