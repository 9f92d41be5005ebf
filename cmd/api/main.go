package main

import (
	"fmt"
	"os"

	"pocketledger/internal/config"
	"pocketledger/internal/database"
	"pocketledger/internal/localstore"
	"pocketledger/internal/logger"
	"pocketledger/internal/router"
	"pocketledger/internal/validator"
)

// @title           PocketLedger API
// @version         1.0
// @description     Local JSON API over the PocketLedger record store: profile, transactions, categories, PIN, session and export history.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	config.Set(appConfig)

	// Open the record store backend
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()
	store := localstore.New(dbManager.Store())

	log.Infof("Starting PocketLedger API on port %s (store: %s)", appConfig.Port, dbManager.Driver())
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.New(store).Run(":" + appConfig.Port)
}
