package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smartwaste-backend/config"
	"smartwaste-backend/internal/api"
	"smartwaste-backend/internal/catalog"
	"smartwaste-backend/internal/db"
	"smartwaste-backend/internal/kv"
	"smartwaste-backend/internal/logger"
	"smartwaste-backend/internal/notification"
	"smartwaste-backend/internal/store"
	"smartwaste-backend/internal/statussync"
	"smartwaste-backend/internal/wizard"
)

func main() {
	// A missing .env is fine; values may come from the environment.
	_ = godotenv.Load()

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)
	defer func() { _ = log.Sync() }()
	log.Info("configuration loaded", zap.String("path", configPath))

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	log.Info("database initialized", zap.String("driver", cfg.Database.Driver))

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.New(kv.NewGormStore(gormDB), log.Named("store"))
	appStore.Initialize(ctx)
	storeDone := make(chan struct{})
	go func() {
		appStore.Run(ctx)
		close(storeDone)
	}()

	cat := catalog.Default().WithPrices(cfg.Catalog.Prices)
	sessions := wizard.NewSessions(cfg.Wizard.SessionTTL, func() *wizard.Wizard {
		return wizard.New(cat, appStore)
	})

	var pushDB *gorm.DB
	var webpushOptions *webpush.Options
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pushDB = gormDB

		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions, log.Named("notification"))
		pool.Start(ctx)
		appStore.Subscribe(pool.Dispatch)
		log.Info("push notifications enabled", zap.Int("workers", cfg.WorkerPool.Size))
	} else {
		log.Warn("VAPID keys are not configured; push notifications disabled")
	}

	if cfg.Sync.Enabled {
		consumer := statussync.NewConsumer(statussync.NewReader(cfg.Sync), appStore, log.Named("sync"))
		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Error("status consumer stopped", zap.Error(err))
			}
		}()

		publisher := statussync.NewPublisher(statussync.NewWriter(cfg.Sync), log.Named("sync"))
		appStore.Subscribe(publisher.Publish)
		go publisher.Run(ctx)
		log.Info("kafka status sync enabled", zap.Strings("brokers", cfg.Sync.Brokers))
	}

	// Initialize router
	handler := api.NewHandler(appStore, cat, sessions, pushDB, webpushOptions, log.Named("api"))
	router := api.NewRouter(cfg.Server, handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	log.Info("shutdown signal received, stopping services")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server Shutdown", zap.Error(err))
	}

	// Stop background workers and wait for the last snapshot to be written.
	cancel()
	select {
	case <-storeDone:
	case <-shutdownCtx.Done():
		log.Warn("timed out waiting for pickups to be saved")
	}

	log.Info("server gracefully stopped")
}
