// Package config provides YAML-based configuration loading for Kitlog.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSlot is the storage slot name used when none is configured.
const DefaultSlot = "gundamBuildTracker.v1"

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config is the top-level Kitlog configuration, loaded from kitlog.yaml.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       LogConfig       `yaml:"log"`
}

// StorageConfig selects where the build collection is persisted.
type StorageConfig struct {
	Driver string      `yaml:"driver"`
	Dir    string      `yaml:"dir"`
	Slot   string      `yaml:"slot"`
	Path   string      `yaml:"path"`
	MySQL  MySQLConfig `yaml:"mysql"`
}

// MySQLConfig holds connection settings for the mysql driver.
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// DashboardConfig holds settings for the local web view.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but returns Default when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverFile
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = defaultDataDir()
	}
	c.Storage.Dir = expandHome(c.Storage.Dir)
	if c.Storage.Slot == "" {
		c.Storage.Slot = DefaultSlot
	}
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(c.Storage.Dir, "kitlog.db")
	}
	c.Storage.Path = expandHome(c.Storage.Path)
	if c.Storage.MySQL.Host == "" {
		c.Storage.MySQL.Host = "127.0.0.1"
	}
	if c.Storage.MySQL.Port == 0 {
		c.Storage.MySQL.Port = 3306
	}
	if c.Storage.MySQL.Database == "" {
		c.Storage.MySQL.Database = "kitlog"
	}
	if c.Storage.MySQL.User == "" {
		c.Storage.MySQL.User = "root"
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// validate checks that all fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverMySQL:
	default:
		errs = append(errs, fmt.Sprintf("storage.driver %q must be one of file, sqlite, mysql", c.Storage.Driver))
	}
	if strings.ContainsAny(c.Storage.Slot, `/\`) {
		errs = append(errs, fmt.Sprintf("storage.slot %q must not contain path separators", c.Storage.Slot))
	}
	if c.Storage.MySQL.Port < 0 || c.Storage.MySQL.Port > 65535 {
		errs = append(errs, fmt.Sprintf("storage.mysql.port %d out of range", c.Storage.MySQL.Port))
	}
	if c.Dashboard.Port < 0 || c.Dashboard.Port > 65535 {
		errs = append(errs, fmt.Sprintf("dashboard.port %d out of range", c.Dashboard.Port))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kitlog"
	}
	return filepath.Join(home, ".kitlog")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
