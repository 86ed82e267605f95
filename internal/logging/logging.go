package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// DefaultDir returns ~/.quadro/logs
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".quadro", "logs"), nil
}

// Init initializes the logging system, writing logs to <dir>/quadro.log.
// An empty dir means DefaultDir. Uses text format for human readability.
// The board owns the terminal, so nothing is written to stdout or stderr.
func Init(dir string) (io.Closer, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	// Open log file in append mode
	logPath := filepath.Join(dir, "quadro.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	Install(file)

	// Redirect standard log package output to the same file
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return file, nil
}

// Install sets a text handler on w as the default logger
func Install(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: LevelFromEnv(),
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// LevelFromEnv reads QUADRO_LOG_LEVEL (debug, info, warn, error). Defaults to debug.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("QUADRO_LOG_LEVEL"))) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
