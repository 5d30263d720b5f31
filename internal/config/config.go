package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/scene"
)

type Config struct {
	Port             int           `envconfig:"PORT" default:"8080"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	JWTSecret        string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins   string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	DefaultColor     string        `envconfig:"DEFAULT_COLOR" default:"red"`
	DefaultThickness float64       `envconfig:"DEFAULT_THICKNESS" default:"1.0"`
	SessionTTL       time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	if _, err := scene.ParseColor(cfg.DefaultColor); err != nil {
		return nil, fmt.Errorf("DEFAULT_COLOR: %w", err)
	}
	return &cfg, nil
}

// Level parses LOG_LEVEL.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// Origins splits ALLOWED_ORIGINS into its entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// EngineOptions returns the drawing defaults for new sessions.
func (c *Config) EngineOptions() engine.Options {
	color, err := scene.ParseColor(c.DefaultColor)
	if err != nil {
		color = scene.Red
	}
	return engine.Options{Color: color, Thickness: c.DefaultThickness}
}
