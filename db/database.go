package db

import (
	"fmt"
	"log"

	"docflow_app_go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared database handle. Initialize must run before any
// service touches it.
var DB *gorm.DB

// Initialize opens the sqlite database and migrates the document,
// number sequence and draft tables. WAL mode plus a busy timeout keeps
// concurrent save and draft writes from blocking each other.
func Initialize(dbPath string, environment string) error {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = database
	log.Println("Database connection established (WAL mode enabled)")

	if err := migrate(); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func migrate() error {
	if err := DB.AutoMigrate(
		&models.Document{},
		&models.NumberSequence{},
		&models.Draft{},
	); err != nil {
		return err
	}
	log.Println("Database schema up to date")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
