package cmd

import (
	"fmt"

	"course-finder/internal/config"
	"course-finder/internal/infrastructure/database"
	"course-finder/pkg/logger"

	"gorm.io/gorm"
)

// openDatabase connects with the configured driver and optionally brings the schema up to date
func openDatabase(cfg *config.Config, migrate bool) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg.DatabaseOptions())
	if err != nil {
		return nil, err
	}

	if err := database.HealthCheck(db); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	if migrate {
		if err := database.RunMigrations(db); err != nil {
			return nil, err
		}
	}

	logger.Debug("Connected to %s database", cfg.Database.Driver)
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
