package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/config"
	"github.com/kendall-kelly/furniture-portal-api/middleware"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"github.com/kendall-kelly/furniture-portal-api/store"
	"github.com/kendall-kelly/furniture-portal-api/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to start application", zap.Error(err))
	}
	defer cleanup()

	router, err := setupRouter(app)
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server is running", zap.String("addr", srv.Addr), zap.String("backend", app.portal.BackendName()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown failed", zap.Error(err))
	}
}

// buildApplication opens the configured backend, loads every collection and wires the services.
// The returned cleanup releases backend connections.
func buildApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*application, func(), error) {
	backend, cleanup, s3Service, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	policy, err := services.ParseContractPolicy(cfg.ContractTotalPolicy)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	portal := services.NewPortal(backend, logger, services.PortalOptions{
		Policy:                policy,
		Hasher:                services.BcryptHasher{Cost: cfg.BcryptCost},
		DefaultClientPassword: cfg.DefaultClientPassword,
		SeedAdminPassword:     cfg.SeedAdminPassword,
	})
	if err := portal.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}

	issuer := services.NewTokenIssuer(cfg.SigningSecret(), cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	auth := services.NewAuthService(portal.Clients, portal.Admins, issuer, services.NewRevocationList())

	app := &application{
		portal: portal,
		auth:   auth,
		tokens: middleware.TokenSettings{
			Secret:   cfg.SigningSecret(),
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		},
		corsOrigins: cfg.CORSAllowedOrigins,
		logger:      logger,
	}

	switch {
	case s3Service != nil:
		app.uploads = services.NewS3UploadService(s3Service)
	case cfg.AWSS3Bucket != "":
		s3Service, err = newS3Service(ctx, cfg, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		app.uploads = services.NewS3UploadService(s3Service)
	default:
		app.uploads = services.NewLocalUploadService(cfg.UploadDir)
		app.uploadDir = cfg.UploadDir
	}

	return app, cleanup, nil
}

// openBackend returns the storage backend selected by STORAGE_BACKEND. The S3 service is
// returned when the backend already created one so uploads can share it.
func openBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Backend, func(), *services.S3Service, error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendSQL:
		db, err := config.ConnectDatabase(cfg, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return store.NewGormBackend(db), cleanup, nil, nil

	case config.BackendS3:
		s3Service, err := newS3Service(ctx, cfg, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.NewS3Backend(s3Service, cfg.S3CollectionPrefix), noop, s3Service, nil

	case config.BackendFirestore:
		client, err := config.NewFirestoreClient(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close firestore client", zap.Error(err))
			}
		}
		return store.NewFirestoreBackend(client), cleanup, nil, nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return store.NewMemoryBackend(), noop, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}

func newS3Service(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*services.S3Service, error) {
	return services.NewS3Service(ctx, services.S3Settings{
		Region:          cfg.AWSRegion,
		Bucket:          cfg.AWSS3Bucket,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	}, logger)
}
