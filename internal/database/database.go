// Package database opens the backing key-value store selected by
// configuration: an in-memory map, an SQLite file or a PostgreSQL table.
package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pocketledger/internal/config"
	"pocketledger/internal/kv"
	"pocketledger/internal/logger"
	"pocketledger/internal/models"
)

// MigrationsSource is where golang-migrate reads the PostgreSQL migrations.
const MigrationsSource = "file://migrations"

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	driver string
	dsn    string
	memory *kv.MemoryStore
}

// NewManager connects to the store backend named by cfg.StoreDriver.
func NewManager(cfg *config.Config) (*Manager, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		return &Manager{driver: cfg.StoreDriver, memory: kv.NewMemoryStore()}, nil

	case config.StoreDriverPostgres:
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  PostgresDSN(cfg),
			PreferSimpleProtocol: true,
		}), gormConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxLifetime(time.Hour)

		return &Manager{db: db, driver: cfg.StoreDriver, dsn: PostgresURL(cfg)}, nil

	default:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gormConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store %s: %w", cfg.SQLitePath, err)
		}

		// SQLite allows a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)

		return &Manager{db: db, driver: config.StoreDriverSQLite}, nil
	}
}

func gormConfig(cfg *config.Config) *gorm.Config {
	level := gormlogger.Warn
	if cfg.Env == "production" || cfg.Env == "test" {
		level = gormlogger.Silent
	}
	return &gorm.Config{Logger: gormlogger.Default.LogMode(level)}
}

// Migrate prepares the kv_entries table. PostgreSQL runs the versioned SQL
// migrations; SQLite uses gorm's AutoMigrate.
func (m *Manager) Migrate() error {
	switch m.driver {
	case config.StoreDriverMemory:
		return nil
	case config.StoreDriverPostgres:
		return m.RunMigrations()
	default:
		logger.Get().Info("Migrating sqlite store...")
		if err := m.db.AutoMigrate(&models.KVEntry{}); err != nil {
			return fmt.Errorf("failed to migrate sqlite store: %w", err)
		}
		return nil
	}
}

// RunMigrations applies pending SQL migrations from the migrations/ directory.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New(MigrationsSource, m.dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// Store returns the key-value store over the opened backend.
func (m *Manager) Store() kv.Store {
	if m.memory != nil {
		return m.memory
	}
	return kv.NewGormStore(m.db)
}

// Driver returns the active store driver.
func (m *Manager) Driver() string {
	return m.driver
}

// DB returns the underlying GORM database instance, nil for the memory driver.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the database connection.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
