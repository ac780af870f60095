// Package config loads CLI runtime settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings shared by every charsheet command. Flags override
// these values.
type Config struct {
	// ProfileDir holds extra profile files merged over the built-in ones.
	ProfileDir string `env:"CHARSHEET_PROFILE_DIR"`
	// TemplateDir overlays section and document templates.
	TemplateDir string `env:"CHARSHEET_TEMPLATE_DIR"`
	// MacroDir replaces the embedded macro packages.
	MacroDir string `env:"CHARSHEET_MACRO_DIR"`
	// Workers bounds concurrent renders in batch mode. Zero means GOMAXPROCS.
	Workers  int    `env:"CHARSHEET_WORKERS" envDefault:"0"`
	LogLevel string `env:"CHARSHEET_LOG_LEVEL" envDefault:"warn"`
	// LogFormat is "console" or "json".
	LogFormat string `env:"CHARSHEET_LOG_FORMAT" envDefault:"console"`
	// Accent forces the accent colour of themed variants.
	Accent string `env:"CHARSHEET_THEME_ACCENT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the Config described by the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("parse env: CHARSHEET_WORKERS must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}

// Logger builds the CLI logger. Output goes to stderr so rendered documents
// can be written to stdout.
func (c Config) Logger() (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(c.LogLevel))); err != nil {
		return nil, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoding := strings.ToLower(c.LogFormat)
	if encoding != "json" {
		encoding = "console"
	}

	zapConfig := zap.Config{
		Level:             level,
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
