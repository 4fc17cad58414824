package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davronov/matchday/internal/bot"
	"github.com/davronov/matchday/internal/config"
	"github.com/davronov/matchday/internal/database"
	server "github.com/davronov/matchday/internal/http"
	"github.com/davronov/matchday/internal/metrics"
	"github.com/davronov/matchday/internal/notifier/slack"
	"github.com/davronov/matchday/internal/reminder"
	"github.com/davronov/matchday/internal/state"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		db.Close()
	}()

	store := state.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	notifier := slack.NewNotifier(cfg.Slack.Token, metricsSvc)
	scheduler := reminder.New(store, notifier, metricsSvc)
	botRouter := bot.New(store, scheduler, cfg.Admin, metricsSvc)

	// An announcement target persisted from an earlier run means reminders
	// were active. Re-arm them on startup.
	if snap := store.Snapshot(); snap.GroupChatID != nil {
		if err := scheduler.Arm(snap.RemindTimes); err != nil {
			log.Error("Failed to re-arm reminder triggers on startup", "error", err)
		} else {
			log.Info("Reminder triggers re-armed", "times", snap.RemindTimes, "chat", *snap.GroupChatID)
		}
	}

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	go scheduler.Run(schedulerCtx)

	s := server.NewServer(
		store,
		botRouter,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		stopScheduler()

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
