package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/briangreenhill/ftracker/internal/workout"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig    `yaml:"database"`
	API      APIConfig         `yaml:"api"`
	Log      LogConfig         `yaml:"log"`
	Packages []workout.Package `yaml:"packages"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type APIConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "ftracker.db"},
		API:      APIConfig{Addr: ":8222"},
		Log:      LogConfig{Level: "info"},
		Packages: workout.SamplePackages(),
	}
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. An empty path skips the file. A packages
// list in the file replaces the sample packages.
//
//	FTRACKER_DB_PATH, FTRACKER_API_ADDR, FTRACKER_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FTRACKER_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("FTRACKER_API_ADDR"); v != "" {
		cfg.API.Addr = v
	}
	if v := os.Getenv("FTRACKER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.API.Addr == "" {
		return fmt.Errorf("api.addr is required")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	for i, p := range c.Packages {
		if p.Code == "" {
			return fmt.Errorf("packages[%d].code is required", i)
		}
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
