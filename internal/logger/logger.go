// Package logger builds the zap logger used by the services.
package logger

import (
	"fmt"
	"strings"

	"github.com/hance08/remit/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a logger from cfg and returns it with a handle that can change
// its level at runtime. Output goes to cfg.File, or stderr when unset, so
// logs never mix with the CLI's own output on stdout.
func New(cfg config.LogConfig) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := resolveLevel(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	base, err := buildConfig(cfg.Format)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	base.Level = level
	base.DisableStacktrace = true

	output := "stderr"
	if strings.TrimSpace(cfg.File) != "" {
		output = cfg.File
	}
	base.OutputPaths = []string{output}
	base.ErrorOutputPaths = []string{"stderr"}

	built, err := base.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("failed to build logger: %w", err)
	}

	return built, level, nil
}

func resolveLevel(raw string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(raw) == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}

	var parsed zapcore.Level
	if err := parsed.Set(raw); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid level %q: %w", raw, err)
	}
	return zap.NewAtomicLevelAt(parsed), nil
}

func buildConfig(format string) (zap.Config, error) {
	switch format {
	case "", FormatJSON:
		cfg := zap.NewProductionConfig()
		cfg.Encoding = FormatJSON
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg, nil
	case FormatConsole:
		cfg := zap.NewDevelopmentConfig()
		cfg.Encoding = FormatConsole
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg, nil
	default:
		return zap.Config{}, fmt.Errorf("invalid log format %q", format)
	}
}
