// Package database opens the shared GORM connection and applies schema
// migration. The connection pool is established once and reused across
// requests; single-row writes are the only atomicity the store guarantees.
package database

import (
	"fmt"

	"github.com/folioworks/core/internal/config"
	"github.com/folioworks/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.DSN,
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

// Migrate runs GORM auto-migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AdminModel{},
		&models.ProjectModel{},
		&models.PostModel{},
		&models.ServiceModel{},
		&models.GalleryItemModel{},
		&models.JourneyModel{},
		&models.CompetencyModel{},
		&models.MessageModel{},
		&models.SocialLinkModel{},
		&models.FAQModel{},
		&models.BrandModel{},
	)
}
