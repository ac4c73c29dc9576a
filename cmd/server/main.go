package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"critvue/internal/config"
	"critvue/internal/db"
	"critvue/internal/email"
	"critvue/internal/jobs"
	"critvue/internal/metrics"
	"critvue/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDev() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations completed")

	metrics.Init(database)

	var notifier *email.Notifier
	if cfg.IsEmailEnabled() {
		notifier = email.NewNotifier(cfg, database)
	} else {
		slog.Info("email notifications disabled, SMTP_HOST not set")
	}

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, notifier); err != nil {
		slog.Error("failed to register routes", "error", err)
		os.Exit(1)
	}

	sweeper := jobs.NewAutoAcceptSweeper(database, notifier, cfg.SweepInterval, cfg.SweepBatchSize)
	go sweeper.Start(ctx)

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cancel()
	if err := srv.Shutdown(); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}
