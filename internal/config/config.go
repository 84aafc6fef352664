package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"gopkg.in/yaml.v3"

	"github.com/runnerr0/most-active-cookie/internal/cookie"
)

// Default config file path.
const DefaultConfigPath = "~/.config/most-active-cookie/config.yaml"

// Config holds all most-active-cookie configuration.
type Config struct {
	Query     QueryConfig     `yaml:"query" ini:"query"`
	Storage   StorageConfig   `yaml:"storage" ini:"storage"`
	Logging   LoggingConfig   `yaml:"logging" ini:"logging"`
	Generator GeneratorConfig `yaml:"generator" ini:"generator"`
}

type QueryConfig struct {
	Strategy   string `yaml:"strategy" ini:"strategy"`
	CheckOrder bool   `yaml:"check_order" ini:"check_order"`
}

type StorageConfig struct {
	Path              string `yaml:"path" ini:"path"`
	SQLiteFile        string `yaml:"sqlite_file" ini:"sqlite_file"`
	SQLiteJournalMode string `yaml:"sqlite_journal_mode" ini:"sqlite_journal_mode"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" ini:"level"`
	JSON       bool   `yaml:"json" ini:"json"`
	File       string `yaml:"file" ini:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" ini:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" ini:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" ini:"max_age_days"`
}

type GeneratorConfig struct {
	Lines  int    `yaml:"lines" ini:"lines"`
	Year   int    `yaml:"year" ini:"year"`
	Output string `yaml:"output" ini:"output"`
}

// Load reads a config file at path and merges it with defaults. Files ending
// in .ini are read as INI sections named after the YAML keys; anything else
// is parsed as YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".ini") {
		err = loadINI(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}

	return cfg, nil
}

// loadINI maps [query], [storage], [logging] and [generator] sections onto cfg,
// keeping defaults for keys the file leaves out.
func loadINI(data []byte, cfg *Config) error {
	f, err := ini.Load(data)
	if err != nil {
		return err
	}

	sections := map[string]interface{}{
		"query":     &cfg.Query,
		"storage":   &cfg.Storage,
		"logging":   &cfg.Logging,
		"generator": &cfg.Generator,
	}
	for name, dst := range sections {
		if !f.HasSection(name) {
			continue
		}
		if err := f.Section(name).MapTo(dst); err != nil {
			return fmt.Errorf("section [%s]: %w", name, err)
		}
	}
	return nil
}

// Validate rejects values no command can act on.
func (c *Config) Validate() error {
	if _, err := cookie.ParseStrategy(c.Query.Strategy); err != nil {
		return fmt.Errorf("query.strategy: %w", err)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}

	if c.Generator.Lines < 0 {
		return fmt.Errorf("generator.lines: must not be negative, got %d", c.Generator.Lines)
	}
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// DBPath returns the expanded SQLite database path from the storage section.
func (c *Config) DBPath() (string, error) {
	dir, err := ExpandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
