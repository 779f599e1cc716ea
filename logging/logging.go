// Package logging builds zap loggers from presets or configuration files.
package logging

import (
	"fmt"
	"os"

	"github.com/database64128/urlparse-go/jsoncfg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger returns a new [*zap.Logger] with the given preset and log level.
//
// The available presets are:
//
//   - "console" (default): Reasonable defaults for production console environments.
//   - "console-nocolor": Same as "console", but without color.
//   - "console-notime": Same as "console", but without timestamps.
//   - "systemd": Reasonable defaults for running as a systemd service. Same as "console", but without color and timestamps.
//   - "production": Zap's built-in production preset.
//   - "development": Zap's built-in development preset.
//
// If the preset is not recognized, it is treated as a path to a JSON configuration file.
//
// The log level does not apply to the "production", "development", or custom presets.
func NewZapLogger(preset string, level zapcore.Level) (*zap.Logger, error) {
	switch preset {
	case "console", "":
		return NewProductionConsoleZapLogger(level, false, false), nil
	case "console-nocolor":
		return NewProductionConsoleZapLogger(level, true, false), nil
	case "console-notime":
		return NewProductionConsoleZapLogger(level, false, true), nil
	case "systemd":
		return NewProductionConsoleZapLogger(level, true, true), nil
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return NewZapLoggerFromConfig(preset)
	}
}

// NewZapLoggerFromConfig returns a new [*zap.Logger] built from the JSON configuration file at path.
func NewZapLoggerFromConfig(path string) (*zap.Logger, error) {
	var zc zap.Config
	if err := jsoncfg.Open(path, &zc); err != nil {
		return nil, fmt.Errorf("failed to load zap logger config: %w", err)
	}
	return zc.Build()
}

// NewProductionConsoleZapLogger creates a new [*zap.Logger] with reasonable defaults for production console environments.
func NewProductionConsoleZapLogger(level zapcore.Level, noColor, noTime bool) *zap.Logger {
	ec := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if noColor {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	if noTime {
		ec.TimeKey = zapcore.OmitKey
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(ec),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}
