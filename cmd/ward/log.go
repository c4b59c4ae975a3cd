package main

import (
	"io"
	"log/slog"
	"os"
	"strconv"
)

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slogLevel(verbose),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func slogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if on, _ := strconv.ParseBool(os.Getenv("DEBUG")); on {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
