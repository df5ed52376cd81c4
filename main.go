// main.go
package main

import (
	"context"
	"log"

	"github.com/Etko77/MovieLibrary/cmd"
	"github.com/Etko77/MovieLibrary/internal/data/repository"
	"github.com/Etko77/MovieLibrary/internal/enrichment"
	"github.com/Etko77/MovieLibrary/internal/usecase"
	"github.com/Etko77/MovieLibrary/internal/wire"
	"github.com/Etko77/MovieLibrary/pkg/database"
	"github.com/Etko77/MovieLibrary/pkg/omdb"
	"github.com/Etko77/MovieLibrary/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Enrichment pool feeds movie ids to background workers; the
	// service only ever submits, never waits.
	pool := enrichment.NewPool(config.Enrichment.Workers, config.Enrichment.QueueSize, logger)

	// Build services with the pool as dispatcher
	service := usecase.NewService(repos, config, pool, logger)

	// The enricher closes the loop: it reads movies through the
	// service and writes rating results back through it.
	provider := omdb.NewClient(config.OMDB, logger)
	enricher := enrichment.NewEnricher(service.Movie, provider, logger)
	pool.Start(enricher.Enrich)

	// Seed the admin account
	if err := service.Auth.EnsureAdmin(context.Background()); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Wire handlers and routes
	app := wire.Wiring(service, repos, config, logger)

	// Start server; blocks until shutdown signal
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))
	cmd.APIServer(app.Router, config.App.Port, logger)

	// Drain in-flight enrichment tasks before exiting
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Enrichment.ShutdownGrace)
	defer cancel()
	pool.Shutdown(shutdownCtx)

	logger.Info("Application stopped")
}
