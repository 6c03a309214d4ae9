// Package config loads the TOML configuration file controlling where the
// database lives and how dates are interpreted.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application name used for the config directory.
	AppName = "tracklog"
	// ConfigFile is the name of the TOML configuration file.
	ConfigFile = "config.toml"
	// DatabaseFile is the default database file name inside the data dir.
	DatabaseFile = "tracklog.db"
)

// Config represents the application configuration.
type Config struct {
	// DatabasePath is the SQLite database location. Empty means the
	// default path under the user data directory.
	DatabasePath string `toml:"database_path"`
	// Timezone is the IANA timezone used for calendar-day boundaries
	// (e.g. "Europe/Berlin"). "Local" uses the system timezone.
	Timezone string `toml:"timezone"`
}

// DefaultConfig returns a Config with defaults that match the no-config
// behavior: database under the user config dir, system local timezone.
func DefaultConfig() Config {
	return Config{
		DatabasePath: "",
		Timezone:     "Local",
	}
}

// Path returns the path to the config file, creating the config directory
// if needed. Uses os.UserConfigDir for cross-platform placement.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads the config file at path, filling defaults for absent keys.
// A missing file is not an error: defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	return cfg, nil
}

// ResolveDatabasePath returns the effective database path: the configured
// one when set, otherwise the default under the user config dir (created
// if needed).
func (c Config) ResolveDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		return c.DatabasePath, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appDir := filepath.Join(configDir, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(appDir, DatabaseFile), nil
}

// Location resolves the configured timezone. "Local" (or empty) returns
// time.Local; anything else must be a valid IANA zone name.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
