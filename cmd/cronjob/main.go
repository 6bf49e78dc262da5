package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"boardcamp-backend/internal/app"
	"boardcamp-backend/internal/config"
	"boardcamp-backend/internal/jobs"
	"boardcamp-backend/internal/logger"
	"boardcamp-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", fmt.Sprintf("Run a specific job once and exit (%s, %s, %s)", jobs.JobOverdueReport, jobs.JobDatabaseHealth, jobs.JobAll))
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Boardcamp Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	store, closeStore, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open record store", "error", err)
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer closeStore()

	publisher, err := app.OpenPublisher(cfg)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	svc, err := app.NewServices(cfg, store, publisher)
	if err != nil {
		logger.Error("Failed to initialize services", "error", err)
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(svc.Rentals, publisher, store, nil, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := jobRunner.RunOnce(*runOnce); err != nil {
			logger.Error("Unknown job name", "job", *runOnce)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		logger.Error("Failed to create scheduler", "error", err)
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
