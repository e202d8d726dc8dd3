package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GiveHope-Foundation/donation-service/internal/auth"
	"github.com/GiveHope-Foundation/donation-service/internal/db"
	internalhttp "github.com/GiveHope-Foundation/donation-service/internal/http"
	"github.com/GiveHope-Foundation/donation-service/internal/messaging"
	"github.com/GiveHope-Foundation/donation-service/internal/notify"
	"github.com/GiveHope-Foundation/donation-service/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Telemetry first so everything below is instrumented. Both calls
	// degrade to no-ops when the collector is unreachable.
	provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: telemetry init failed: %v", err)
	}
	if provider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				log.Printf("Warning: telemetry shutdown failed: %v", err)
			}
		}()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics init failed: %v", err)
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		migrationsDir := os.Getenv("MIGRATIONS_DIR")
		if migrationsDir == "" {
			migrationsDir = "migrations"
		}
		if err := db.Migrate(database, migrationsDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	deps := internalhttp.Dependencies{
		DB:      database,
		Metrics: metrics,
	}

	// Event publishing and email are best-effort collaborators; the service
	// runs without them.
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events disabled: %v", err)
	} else {
		deps.Publisher = publisher
		defer publisher.Close()
	}

	deps.Notifier = notify.NewEmailNotifier()

	permsPath := os.Getenv("PERMISSIONS_FILE")
	if permsPath == "" {
		permsPath = "permissions.yml"
	}
	perms, err := auth.LoadPermissions(permsPath)
	if err != nil {
		log.Fatalf("Failed to load permissions from %s: %v", permsPath, err)
	}
	deps.Perms = perms

	authCfg := auth.LoadConfig()
	jwks, err := auth.NewJWKS(authCfg.JWKSURL, 0)
	if err != nil {
		log.Fatalf("Failed to load JWKS from %s: %v", authCfg.JWKSURL, err)
	}
	defer jwks.Close()
	deps.Verifier = auth.NewVerifier(authCfg, jwks)

	router := internalhttp.SetupRouter(deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      internalhttp.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("donation-service starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("✓ Server stopped")
}
