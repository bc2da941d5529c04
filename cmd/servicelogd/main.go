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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"service-logger-backend/config"
	"service-logger-backend/internal/api"
	"service-logger-backend/internal/catalog"
	"service-logger-backend/internal/db"
	"service-logger-backend/internal/geo"
	"service-logger-backend/internal/logbook"
	"service-logger-backend/internal/logger"
	"service-logger-backend/internal/media"
	"service-logger-backend/internal/notification"
	"service-logger-backend/internal/remote"
	"service-logger-backend/internal/store"
	"service-logger-backend/internal/validate"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck
	zl.Info("configuration loaded", zap.String("path", configPath))

	// Records live in CSV tables by default, or in a database.
	var (
		appStore  store.Store
		tablesDir string
	)
	if cfg.Storage.Driver == "csv" {
		appStore, err = store.NewCSVStore(cfg.Storage.DataDir, zl)
		tablesDir = cfg.Storage.DataDir
	} else {
		var gormDB *gorm.DB
		gormDB, err = db.Init(&cfg.Storage, zl)
		if err == nil {
			appStore = store.NewGormStore(gormDB)
		}
	}
	if err != nil {
		zl.Fatal("failed to initialize storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	zl.Info("data store initialized", zap.String("driver", cfg.Storage.Driver))

	mediaStore, err := media.NewStorage(cfg.Storage.MediaRoot)
	if err != nil {
		zl.Fatal("failed to initialize media storage", zap.Error(err))
	}

	var geocoder geo.Geocoder
	if cfg.Geocoder.Enabled {
		geocoder = geo.NewNominatim(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout, cfg.Geocoder.RequestsPerSecond)
	}

	var syncer remote.Syncer = remote.Noop{}
	if cfg.Sync.Enabled {
		syncer = remote.NewGit(remote.GitOptions{
			Dir:       cfg.Sync.RepoDir,
			Remote:    cfg.Sync.Remote,
			Branch:    cfg.Sync.Branch,
			User:      cfg.Sync.User,
			Token:     cfg.Sync.Token,
			UserName:  cfg.Sync.UserName,
			UserEmail: cfg.Sync.UserEmail,
		}, zl)
	}

	var (
		mailer   notification.Mailer
		composer *notification.Composer
	)
	if cfg.Mail.Enabled {
		mailer = notification.NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password)
		composer = &notification.Composer{From: cfg.Mail.User, Admin: cfg.Mail.AdminAddress}
	}

	svc := logbook.NewService(logbook.Deps{
		Store:     appStore,
		Validator: validate.New(cfg.Technicians, nil),
		Catalog:   catalog.Default(),
		Media:     mediaStore,
		Locator:   geo.NewLocator(geocoder, zl),
		Syncer:    syncer,
		Mailer:    mailer,
		Composer:  composer,
		TablesDir: tablesDir,
		Options: logbook.Options{
			RawBaseURL:         cfg.Sync.RawBaseURL,
			InternalSummary:    cfg.Mail.InternalSummary,
			MaxAttachmentBytes: cfg.Mail.MaxAttachmentBytes,
		},
		Logger: zl,
	})

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	warnings, err := svc.Start(ctx)
	if err != nil {
		zl.Fatal("failed to load records", zap.Error(err))
	}
	for _, w := range warnings {
		zl.Warn(w)
	}

	// Initialize router
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewHandler(svc, zl), api.RouterOptions{
		RateLimit:   cfg.Server.RateLimitPerSec,
		Burst:       cfg.Server.RateLimitBurst,
		IPHeader:    cfg.Server.RequestIPHeader,
		CacheTTL:    time.Duration(cfg.Server.CacheTTLSeconds) * time.Second,
		MediaRoot:   cfg.Storage.MediaRoot,
		MaxUploadMB: cfg.Server.MaxUploadMB,
	}, zl)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		zl.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	zl.Info("shutdown signal received, stopping services")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("HTTP server Shutdown", zap.Error(err))
	}

	zl.Info("server gracefully stopped")
}
