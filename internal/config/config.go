// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/logging"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// CalendarConfig holds week window settings.
type CalendarConfig struct {
	WeekStart string `toml:"week_start"` // e.g., "monday"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds terminal rendering settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
	Color bool   `toml:"color"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"` // host:port
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`  // empty disables the log file
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			WeekStart: "monday",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
			Color: true,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8088",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weekview.db"
	}
	return filepath.Join(home, ".local", "share", "weekview", "weekview.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "weekview", "config.toml")
}

// LoadFrom loads configuration from the specified path and validates it.
func LoadFrom(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Read starts with defaults, overlays the file at path if it exists, then
// applies env overrides. It does not validate, so the commands that repair a
// broken config can still start.
func Read(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEEKVIEW_WEEK_START"); v != "" {
		cfg.Calendar.WeekStart = v
	}
	if v := os.Getenv("WEEKVIEW_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("WEEKVIEW_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("WEEKVIEW_UI_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.Color = b
		}
	}
	if v := os.Getenv("WEEKVIEW_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("WEEKVIEW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WEEKVIEW_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Themes lists the palette names the TUI ships with.
var Themes = []string{"mocha", "macchiato", "frappe", "latte"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := dateutil.ParseWeekday(c.Calendar.WeekStart); !ok {
		return fmt.Errorf("invalid week_start: %q", c.Calendar.WeekStart)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !isValidTheme(c.UI.Theme) {
		return fmt.Errorf("invalid theme: %q (valid: %s)", c.UI.Theme, strings.Join(Themes, ", "))
	}
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("server addr must be host:port, got %q", c.Server.Addr)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	return nil
}

func isValidTheme(name string) bool {
	name = strings.ToLower(name)
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// FirstWeekday returns the configured first column of the week.
// It falls back to Monday when week_start does not name a weekday.
func (c *Config) FirstWeekday() time.Weekday {
	if wd, ok := dateutil.ParseWeekday(c.Calendar.WeekStart); ok {
		return wd
	}
	return time.Monday
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
