package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"flyerpoints-backend/internal/config"
	"flyerpoints-backend/internal/jobs"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/repository"
	fsrepo "flyerpoints-backend/internal/repository/firestore"
	"flyerpoints-backend/internal/repository/memory"
	"flyerpoints-backend/internal/scheduler"
	"flyerpoints-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'snapshot-leaderboard', 'all-weekly')")
	flag.Parse()

	// Local overrides from .env, if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FlyerPoints Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// Initialize Repositories
	var (
		users  repository.UserRepository
		boards repository.LeaderboardRepository
	)
	if cfg.Store.Type == "firestore" {
		var opts []option.ClientOption
		if cfg.Firebase.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		}
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
		if err != nil {
			logger.Error("Failed to initialize Firebase app", "error", err)
			log.Fatalf("Failed to initialize Firebase app: %v", err)
		}
		fsClient, err := app.Firestore(ctx)
		if err != nil {
			logger.Error("Failed to connect to Firestore", "error", err)
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer fsClient.Close()
		store := fsrepo.NewStore(fsClient)
		users, boards = store.UserRepository, store.LeaderboardRepository
		logger.Info("Firestore connection established", "project_id", cfg.Firebase.ProjectID)
	} else {
		logger.Info("Using in-memory store (development mode)")
		store := memory.NewStore()
		users, boards = store.UserRepository, store.LeaderboardRepository
	}

	// Initialize Services
	leaderboardSvc := service.NewLeaderboardService(users, boards, cfg.Leaderboard.TopN, cfg.Leaderboard.ResetBatchSize, cfg.SchedulerLocation())

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(leaderboardSvc, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
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

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "snapshot-leaderboard":
		jobRunner.SnapshotLeaderboard()
	case "all-weekly":
		jobRunner.RunAllWeeklyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - snapshot-leaderboard\n")
		fmt.Printf("  - all-weekly\n")
		os.Exit(1)
	}
}
