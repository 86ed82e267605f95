package app

import (
	"log/slog"

	projectservice "github.com/thenoetrevino/quadro/internal/services/project"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	clock  projectservice.Clock
	logger *slog.Logger
}

// WithClock sets the clock that decides which day "today" is for status rules
func WithClock(now projectservice.Clock) Option {
	return func(cfg *appConfig) {
		cfg.clock = now
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
