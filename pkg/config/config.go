// Package config loads knnsearch settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"knn_search/pkg/graph"
	"knn_search/pkg/search"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the full knnsearch configuration.
type Config struct {
	Space  SpaceConfig  `yaml:"space"`
	Graph  GraphConfig  `yaml:"graph"`
	Search SearchConfig `yaml:"search"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// SpaceConfig bounds the coordinate space.
type SpaceConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GraphConfig drives graph generation.
type GraphConfig struct {
	Points      int    `yaml:"points"`
	Neighbours  int    `yaml:"neighbours"`
	Seed        uint64 `yaml:"seed,omitempty"` // 0 picks a clock seed
	MaxAttempts int    `yaml:"max_attempts,omitempty"`
}

type SearchConfig struct {
	Strategy      string `yaml:"strategy"`
	MaxExpansions int    `yaml:"max_expansions,omitempty"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	CORSOrigin    string        `yaml:"cors_origin,omitempty"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	MaxConcurrent int           `yaml:"max_concurrent"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the settings used when no file is given: a 500x500 space
// with 500 points of 7 neighbours each, searched with best first.
func Default() *Config {
	return &Config{
		Space: SpaceConfig{Width: 500, Height: 500},
		Graph: GraphConfig{
			Points:      500,
			Neighbours:  7,
			MaxAttempts: graph.DefaultMaxAttempts,
		},
		Search: SearchConfig{Strategy: search.BestFirst{}.Name()},
		Server: ServerConfig{
			Addr:          ":8090",
			ReadTimeout:   5 * time.Second,
			WriteTimeout:  10 * time.Second,
			MaxConcurrent: 64,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks ranges and names. It does not check that the space can hold
// the requested points; the builder reports that.
func (c *Config) Validate() error {
	switch {
	case c.Space.Width <= 0 || c.Space.Height <= 0:
		return fmt.Errorf("%w: space must be positive, got %dx%d", ErrInvalidConfig, c.Space.Width, c.Space.Height)
	case c.Graph.Points < 0:
		return fmt.Errorf("%w: graph.points must not be negative", ErrInvalidConfig)
	case c.Graph.Neighbours < 0:
		return fmt.Errorf("%w: graph.neighbours must not be negative", ErrInvalidConfig)
	case c.Graph.MaxAttempts < 0:
		return fmt.Errorf("%w: graph.max_attempts must not be negative", ErrInvalidConfig)
	case c.Search.MaxExpansions < 0:
		return fmt.Errorf("%w: search.max_expansions must not be negative", ErrInvalidConfig)
	case c.Server.MaxConcurrent < 0:
		return fmt.Errorf("%w: server.max_concurrent must not be negative", ErrInvalidConfig)
	}
	if _, err := search.ParseStrategy(c.Search.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Log.ZerologLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ZerologLevel parses Log.Level. An empty level means info.
func (l LogConfig) ZerologLevel() (zerolog.Level, error) {
	if l.Level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(l.Level)
}
