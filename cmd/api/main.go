package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/glucolog/backend/config"
	"github.com/glucolog/backend/internal/database"
	"github.com/glucolog/backend/internal/server"
	"github.com/glucolog/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := database.RunMigrations(db, migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, advice caching disabled: %v", err)
		redisClient = nil
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	adviceService := service.NewAdviceService(redisClient)

	var exportService service.IExportService
	if s3Cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("Warning: S3 unavailable, history export disabled: %v", err)
	} else {
		exportService = service.NewExportService(service.NewEntryService(db), s3Cfg)
	}

	srv := server.New(cfg, db, authService, adviceService, exportService)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
