// Package config loads encore settings from config.yaml in the XDG config
// directory, then applies ENCORE_* environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "encore"

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level    string `yaml:"level,omitempty"`     // debug, info, warn, error
	UseCases bool   `yaml:"use_cases,omitempty"` // log every service use case
}

type Config struct {
	DBPath        string    `yaml:"db_path,omitempty"`
	ContentDir    string    `yaml:"content_dir,omitempty"` // empty means the built-in catalog
	OpenLinks     bool      `yaml:"open_links"`            // launch the browser for promo links
	MarkdownStyle string    `yaml:"markdown_style,omitempty"`
	Log           LogConfig `yaml:"log,omitempty"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DBPath:        filepath.Join(DataDir(), appName+".db"),
		OpenLinks:     true,
		MarkdownStyle: "dark",
		Log:           LogConfig{Level: "warn"},
	}
}

// ConfigDir returns the XDG config directory for encore.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the XDG data directory for encore.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads config.yaml from the XDG config directory and applies the
// environment. A missing file is not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if path := ConfigPath(); path != "" {
		var err error
		if cfg, err = LoadFrom(path); err != nil {
			return cfg, err
		}
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFrom reads config from path. Returns DefaultConfig if the file does
// not exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.ContentDir = expandHome(cfg.ContentDir)
	return cfg, nil
}

// SaveTo writes cfg to path, creating the directory if needed.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg from ENCORE_* variables. Unparseable values are
// ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("ENCORE_DB"); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v := os.Getenv("ENCORE_CONTENT"); v != "" {
		cfg.ContentDir = expandHome(v)
	}
	if v := os.Getenv("ENCORE_LOG_LEVEL"); v != "" {
		if _, ok := parseLevel(v); ok {
			cfg.Log.Level = strings.ToLower(v)
		}
	}
	if v := os.Getenv("ENCORE_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.UseCases = b
		}
	}
	if v := os.Getenv("ENCORE_OPEN_LINKS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OpenLinks = b
		}
	}
	if v := os.Getenv("ENCORE_MARKDOWN_STYLE"); v != "" {
		cfg.MarkdownStyle = v
	}
}

// SlogLevel returns the configured log level, defaulting to warn.
func (c Config) SlogLevel() slog.Level {
	if l, ok := parseLevel(c.Log.Level); ok {
		return l
	}
	return slog.LevelWarn
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
