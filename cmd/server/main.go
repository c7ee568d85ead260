package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	apihttp "flyerpoints-backend/internal/api/http"
	"flyerpoints-backend/internal/config"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/ocr"
	"flyerpoints-backend/internal/repository"
	fsrepo "flyerpoints-backend/internal/repository/firestore"
	"flyerpoints-backend/internal/repository/memory"
	"flyerpoints-backend/internal/security"
	"flyerpoints-backend/internal/service"
	"flyerpoints-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
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
	logger.Info("Starting FlyerPoints Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Store configuration", "type", cfg.Store.Type, "auth_provider", cfg.Auth.Provider)

	ctx := context.Background()

	// Initialize Firebase app when any production client needs it
	var app *firebase.App
	if cfg.Store.Type == "firestore" || cfg.Auth.Provider == "firebase" {
		var opts []option.ClientOption
		if cfg.Firebase.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		}
		app, err = firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
		if err != nil {
			logger.Error("Failed to initialize Firebase app", "error", err)
			log.Fatalf("Failed to initialize Firebase app: %v", err)
		}
	}

	// Initialize Repositories
	var (
		runner       repository.TxRunner
		users        repository.UserRepository
		photos       repository.PhotoRepository
		transactions repository.TransactionRepository
		boards       repository.LeaderboardRepository
	)

	// Initialize Blob Storage and OCR alongside the store backend: the
	// firestore store pairs with the real GCS and Vision clients, the
	// memory store with their in-process stand-ins.
	var blobs storage.BlobStorage
	var ocrClient ocr.Client

	switch cfg.Store.Type {
	case "firestore":
		fsClient, err := app.Firestore(ctx)
		if err != nil {
			logger.Error("Failed to connect to Firestore", "error", err)
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer fsClient.Close()
		store := fsrepo.NewStore(fsClient)
		runner, users, photos = store, store.UserRepository, store.PhotoRepository
		transactions, boards = store.TransactionRepository, store.LeaderboardRepository
		logger.Info("Firestore connection established", "project_id", cfg.Firebase.ProjectID)

		blobs, err = storage.NewGCSStorage(ctx, cfg.Firebase.CredentialsFile, cfg.MaxImageSizeBytes())
		if err != nil {
			logger.Error("Failed to initialize GCS storage", "error", err)
			log.Fatalf("Failed to initialize GCS storage: %v", err)
		}
		ocrClient, err = ocr.NewVisionClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize Vision client", "error", err)
			log.Fatalf("Failed to initialize Vision client: %v", err)
		}
	default:
		logger.Info("Using in-memory store and storage (development mode)")
		store := memory.NewStore()
		runner, users, photos = store, store.UserRepository, store.PhotoRepository
		transactions, boards = store.TransactionRepository, store.LeaderboardRepository
		blobs = storage.NewMemoryStorage(cfg.MaxImageSizeBytes())
		ocrClient = &ocr.StubClient{Text: "スーパー 特売 weekend sale"}
	}

	// Initialize Security
	var verifier security.TokenVerifier
	if cfg.Auth.Provider == "firebase" {
		authClient, err := app.Auth(ctx)
		if err != nil {
			logger.Error("Failed to initialize Firebase auth", "error", err)
			log.Fatalf("Failed to initialize Firebase auth: %v", err)
		}
		verifier = security.NewFirebaseVerifier(authClient)
	} else {
		verifier = security.NewLocalVerifier(cfg.Auth.Secret)
	}

	// Initialize Notifier
	var notifier service.Notifier
	if cfg.Email.SendGridAPIKey != "" {
		notifier = service.NewSendGridNotifier(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.OpsEmail)
	} else {
		notifier = service.NopNotifier{}
	}

	// Initialize Services
	ingestSvc := service.NewIngestService(runner, photos, blobs, ocrClient, cfg.Rewards.PhotoPoints)
	reviewSvc := service.NewReviewService(runner, users, photos, cfg.Rewards.PhotoPoints)
	redemptionSvc := service.NewRedemptionService(runner, notifier, cfg.Rewards.RedemptionPoints)
	leaderboardSvc := service.NewLeaderboardService(users, boards, cfg.Leaderboard.TopN, cfg.Leaderboard.ResetBatchSize, cfg.SchedulerLocation())
	userSvc := service.NewUserService(users, transactions)

	// Set up HTTP server
	server := apihttp.NewServer(ingestSvc, reviewSvc, redemptionSvc, leaderboardSvc, userSvc, verifier)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), server.Router()); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
