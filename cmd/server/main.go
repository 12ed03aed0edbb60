package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/wijdennerhouma/App-JobConnect/api"
	"github.com/wijdennerhouma/App-JobConnect/internal/config"
	"github.com/wijdennerhouma/App-JobConnect/internal/db"
	"github.com/wijdennerhouma/App-JobConnect/internal/notify"
	"github.com/wijdennerhouma/App-JobConnect/internal/push"
	"github.com/wijdennerhouma/App-JobConnect/internal/repository/mongodb"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	log.Printf("Starting JobConnect server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection
	database, err := db.New(ctx, cfg.MongoURI, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}

	store := mongodb.New(database.Database(), logger)

	// Push transport, disabled when no credentials are configured
	var sender push.Sender = push.Disabled{}
	if cfg.FirebaseCredentials != "" {
		fcm, err := push.NewFCM(ctx, cfg.FirebaseCredentials)
		if err != nil {
			log.Fatalf("Failed to init push sender: %v", err)
		}
		sender = fcm
	} else {
		logger.Warn("push delivery disabled, no firebase credentials configured")
	}

	dispatcher := notify.NewDispatcher(sender, logger, cfg.PushWorkers)
	dispatcher.Start(ctx)

	notifier := notify.NewService(store, store, dispatcher, logger)

	for _, sub := range []string{"avatars", "identities"} {
		if err := os.MkdirAll(filepath.Join(cfg.UploadDir, sub), 0o755); err != nil {
			log.Fatalf("Failed to create upload dir: %v", err)
		}
	}

	handlers := api.Handlers{
		Auth:          api.NewAuthHandler(store, store, store, cfg.JWTSecret, cfg.TokenDuration),
		Uploads:       api.NewUploadsHandler(store, cfg.UploadDir),
		Jobs:          api.NewJobsHandler(store),
		Applications:  api.NewApplicationsHandler(store, store, store, notifier),
		Resumes:       api.NewResumesHandler(store),
		Chat:          api.NewChatHandler(store, store, store, notifier),
		Notifications: api.NewNotificationsHandler(store),
		System:        &api.SystemHandler{},
	}

	handler := api.SetupRoutes(handlers, cfg.JWTSecret, version, buildTime)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Drain queued push deliveries before closing the store
	dispatcher.Stop()

	if err := database.Close(shutdownCtx); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
