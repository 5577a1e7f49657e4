package main

import (
	"log/slog"
	"os"
)

// InitLogger installs the process-wide structured logger.
func InitLogger() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
