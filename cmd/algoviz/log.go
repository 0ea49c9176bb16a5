package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/san-kum/algoviz/internal/config"
)

func logLevel(cfg *config.Config) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// newLogger builds the process logger. Headless commands log in color to
// stderr. Full-screen modes own the terminal, so they log to the log file
// or nowhere. The returned func closes the log file.
func newLogger(cfg *config.Config, fullScreen bool) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: logLevel(cfg)}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		logger := slog.New(slog.NewTextHandler(f, opts))
		slog.SetDefault(logger)
		return logger, func() { f.Close() }, nil
	}

	var handler slog.Handler
	if fullScreen {
		handler = slog.NewTextHandler(io.Discard, opts)
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.Kitchen,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, func() {}, nil
}
