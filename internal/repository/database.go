package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jrnhq/jrn/internal/config"
	"github.com/jrnhq/jrn/internal/models"
)

// Database owns the gorm connection. It is constructed once at startup and
// handed to the repositories; there is no package-level instance.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the Postgres connection, configures the pool and runs
// the idempotent schema migration.
func NewDatabase(cfg *config.Config, debug bool) (*Database, error) {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	database, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	db := &Database{DB: database}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the entries and chat_messages tables. Safe to
// run repeatedly.
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
		&models.Entry{},
		&models.ChatMessage{},
	)
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health pings the database.
func (d *Database) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
