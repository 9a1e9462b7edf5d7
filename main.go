package main

import (
	"context"
	"time"

	"github.com/TravelTales/travel-claims-backend/config"
	"github.com/TravelTales/travel-claims-backend/handlers"
	mongostore "github.com/TravelTales/travel-claims-backend/internal/store/mongo"
	"github.com/TravelTales/travel-claims-backend/internal/storage"
	"github.com/TravelTales/travel-claims-backend/logger"
	"github.com/TravelTales/travel-claims-backend/router"
	"github.com/TravelTales/travel-claims-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env for development; env vars win in production.
	_ = godotenv.Load()

	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// The MongoDB client is the process-wide cached connection handle: built
	// once here and injected, reused by every request. The driver connects
	// lazily, so an unreachable store surfaces on the first command within
	// the bounded server-selection wait.
	client, err := mongostore.NewClient(
		context.Background(),
		cfg.Mongo.URI,
		time.Duration(cfg.Mongo.ServerSelectionTimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("Failed to initialize document store client: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warnw("Failed to disconnect document store client", "error", err)
		}
	}()

	blobStore, err := buildBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	submissionStore := mongostore.NewSubmissionStore(
		client.Database(cfg.Mongo.Database),
		cfg.Mongo.Collection,
	)

	var confirmer handlers.ConfirmationSender
	if cfg.Email.Enabled {
		confirmer = services.NewConfirmationService(&cfg.Email)
	}

	deps := router.Dependencies{
		Config: cfg,
		SubmissionHandler: handlers.NewSubmissionHandler(
			submissionStore,
			blobStore,
			cfg.Storage.MaxFileBytes,
			confirmer,
		),
		HealthHandler: handlers.NewHealthHandler(submissionStore),
	}

	r := router.SetupRouter(deps)

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildBlobStore selects the attachment storage strategy from configuration.
func buildBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendDisk:
		return storage.NewLocalStore(cfg.Storage.UploadDir), nil
	case config.StorageBackendS3:
		return storage.NewS3Store(
			cfg.Storage.S3AccountID,
			cfg.Storage.S3Bucket,
			cfg.Storage.S3AccessKey,
			cfg.Storage.S3SecretKey,
		)
	default:
		return storage.NewInlineStore(), nil
	}
}
