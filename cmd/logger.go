package cmd

import (
	"io"
	"log/slog"
	"strings"

	"note-taking-api/config"
)

func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func setupLogger(cfg config.LoggingConfig, w io.Writer) {
	slog.SetDefault(newLogger(cfg, w))
}
