package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Bablu7011/internship-project/internal/config"
	"github.com/Bablu7011/internship-project/internal/database"
	"github.com/Bablu7011/internship-project/internal/logging"
	"github.com/Bablu7011/internship-project/internal/otel"
	"github.com/Bablu7011/internship-project/internal/readiness"
	"github.com/Bablu7011/internship-project/internal/server"
	"github.com/Bablu7011/internship-project/internal/storage"
)

// @title Hello Auto Scaling API
// @version 1.0
// @description Greeting page and health probes for the auto scaling demo service.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, otel.SettingsFromEnv(), loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	prober := readiness.NewProber(2 * time.Second)

	// Optional dependencies only feed /ready; /health never touches them.
	var db *sql.DB
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		prober.Add(readiness.Named("postgres", db.PingContext))
		logging.JSON(loc, map[string]any{"event": "dependency_enabled", "dependency": "postgres", "db_host": cfg.Database.Host})
	}
	if cfg.MinIO.Enabled() {
		bucket, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
		prober.Add(readiness.Named("object_store", bucket.Ping))
		logging.JSON(loc, map[string]any{"event": "dependency_enabled", "dependency": "object_store", "bucket": bucket.Name()})
	}

	app, err := server.New(server.Options{Config: cfg, Prober: prober})
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logging.JSON(loc, map[string]any{"event": "server_starting", "addr": addr, "dependencies": prober.Len()})
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	case <-ctx.Done():
	}

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout()); err != nil {
		logging.Error(loc, "server", "server_shutdown_failed", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logging.Error(loc, "otel", "tracing_shutdown_failed", err)
	}
	if db != nil {
		_ = db.Close()
	}

	logging.JSON(loc, map[string]any{"event": "server_stopped"})
}
