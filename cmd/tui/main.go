package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"taskflow/internal/config"
	"taskflow/internal/server"
	"taskflow/internal/tui"
)

func main() {
	cfg := config.Load()
	server.ConfigureLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, os.Getenv("LOG_FILE"))
	stop()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Error(err)
		os.Exit(1)
	}
}

// run owns the terminal until the user quits. Logs go to logPath when set
// and are discarded otherwise.
func run(ctx context.Context, cfg *config.Config, logPath string) error {
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			log.SetOutput(io.Discard)
			_ = f.Close()
		}()
		log.SetOutput(f)
	}

	app, err := server.Bootstrap(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.WithError(err).Error("failed to close store")
		}
	}()

	now := func() time.Time { return time.Now().In(app.Location) }
	if err := tui.Run(ctx, app.Board, tui.WithClock(now, cfg.TickInterval)); err != nil {
		return fmt.Errorf("terminal board exited: %w", err)
	}
	return nil
}
