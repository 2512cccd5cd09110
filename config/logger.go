package config

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CreateLogger builds the process logger. A log file, when configured,
// receives JSON entries at info level, or debug level in debug mode.
func (c *Config) CreateLogger() (*zap.Logger, error) {
	if c.LogFile != "" {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{c.LogFile}
		cfg.ErrorOutputPaths = []string{c.LogFile}
		if c.Debug {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		logger, err := cfg.Build()
		return logger, errors.Wrap(err, "create logger")
	}

	var logger *zap.Logger
	var err error
	if c.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	return logger, errors.Wrap(err, "create logger")
}
