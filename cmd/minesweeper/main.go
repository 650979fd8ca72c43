package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

func newLogger(logFile *config.LogFile) *slog.Logger {
	var handler slog.Handler
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}

	if logFile == nil {
		return slog.New(handler)
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   logFile.Path,
		MaxSize:    logFile.MaxSizeMB,
		MaxBackups: logFile.MaxBackups,
		MaxAge:     logFile.MaxAgeDays,
	}
	if config.Development() {
		// keep colors on the terminal, plain JSON in the file
		return slog.New(fanout{
			handler,
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		})
	}
	return slog.New(slog.NewJSONHandler(io.MultiWriter(os.Stderr, w), nil))
}

func main() {
	logFile, err := config.NewLogFile()
	if err != nil {
		slog.Error("failed to read log file config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(logFile)
	mines.Log = logger.With(slog.String("component", "mines"))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	if err := app.New(logger).Start(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
