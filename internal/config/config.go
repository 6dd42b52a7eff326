package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration
type Config struct {
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	Theme   Theme   `yaml:"theme"`
}

type Storage struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

type Log struct {
	Level string `yaml:"level"`
	// File defaults to <storage dir>/logs/organizenow.log
	File string `yaml:"file"`
}

// Theme holds lipgloss colors (ANSI numbers or hex strings)
type Theme struct {
	Accent string `yaml:"accent"`
	Border string `yaml:"border"`
	Muted  string `yaml:"muted"`
	Error  string `yaml:"error"`
}

func Default() *Config {
	return &Config{
		Storage: Storage{Backend: BackendJSON, Dir: "~/.organizenow"},
		Log:     Log{Level: "info"},
		Theme:   DefaultTheme(),
	}
}

func DefaultTheme() Theme {
	return Theme{
		Accent: "205",
		Border: "240",
		Muted:  "241",
		Error:  "196",
	}
}

// Overrides are command line values that win over the file and environment.
type Overrides struct {
	Backend string
	Dir     string
}

// Load reads the config at path. An empty path means $ORGANIZENOW_CONFIG or
// the user config directory. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, Overrides{})
}

func LoadWithOverrides(path string, o Overrides) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		// Unmarshal over the defaults so unset keys keep their default value
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if o.Backend != "" {
		cfg.Storage.Backend = o.Backend
	}
	if o.Dir != "" {
		cfg.Storage.Dir = o.Dir
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	if p := os.Getenv("ORGANIZENOW_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "organizenow", "config.yaml"), nil
}

func (c *Config) applyEnv() {
	if dir := os.Getenv("ORGANIZENOW_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if backend := os.Getenv("ORGANIZENOW_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
}

// applyDefaults fills in values a config file left blank
func (c *Config) applyDefaults() {
	d := Default()
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = d.Storage.Dir
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	t := DefaultTheme()
	if c.Theme.Accent == "" {
		c.Theme.Accent = t.Accent
	}
	if c.Theme.Border == "" {
		c.Theme.Border = t.Border
	}
	if c.Theme.Muted == "" {
		c.Theme.Muted = t.Muted
	}
	if c.Theme.Error == "" {
		c.Theme.Error = t.Error
	}
}

func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage.Backend, BackendJSON, BackendSQLite)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

func (c *Config) resolvePaths() error {
	dir, err := expandHome(c.Storage.Dir)
	if err != nil {
		return err
	}
	c.Storage.Dir = dir

	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.Storage.Dir, "logs", "organizenow.log")
		return nil
	}
	c.Log.File, err = expandHome(c.Log.File)
	return err
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
