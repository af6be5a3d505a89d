// Package logger builds the zap logger used by all commands.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Debug bool
	Quiet bool
}

// New creates a console logger for interactive use. Debug switches to the
// development config with stacktraces off; Quiet raises the floor to warnings
// so batch output stays readable.
func New(cfg Config) (*zap.Logger, error) {
	var config zap.Config

	if cfg.Debug {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.Encoding = "console"
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	config.DisableStacktrace = true

	if cfg.Quiet {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	} else if cfg.Debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	return config.Build()
}

// Nop returns a logger that discards everything. Used as the default for
// library types whose caller did not supply one.
func Nop() *zap.Logger {
	return zap.NewNop()
}
