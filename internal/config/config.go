// Package config loads chessplay settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hailam/chessrules/internal/storage"
)

// Environment overrides
const (
	EnvDataDir  = "CHESSPLAY_DATA_DIR"
	EnvLogLevel = "CHESSPLAY_LOG_LEVEL"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every setting of the application.
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Log     Log     `yaml:"log"`
	Rules   Rules   `yaml:"rules"`
	Storage Storage `yaml:"storage"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// Rules toggles optional rules of the game controller.
type Rules struct {
	// AutoDraw ends the game on threefold repetition, the fifty-move rule
	// and insufficient material.
	AutoDraw bool `yaml:"auto_draw"`

	// DefaultPromotion is the piece a pawn becomes when no choice is given.
	DefaultPromotion string `yaml:"default_promotion"` // q, r, b, n
}

// Storage configures session persistence.
type Storage struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dataDir, err := storage.GetDataDir()
	if err != nil {
		dataDir = ".chessplay"
	}
	return &Config{
		DataDir: dataDir,
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Rules: Rules{
			AutoDraw:         true,
			DefaultPromotion: "q",
		},
		Storage: Storage{
			Enabled: true,
		},
	}
}

// Load reads the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate checks that every field holds a supported value.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}

	switch c.Rules.DefaultPromotion {
	case "q", "r", "b", "n":
	default:
		return fmt.Errorf("%w: rules.default_promotion %q", ErrInvalidConfig, c.Rules.DefaultPromotion)
	}

	if c.Storage.Enabled && c.DataDir == "" {
		return fmt.Errorf("%w: data_dir is required when storage is enabled", ErrInvalidConfig)
	}
	return nil
}

// Marshal returns the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
