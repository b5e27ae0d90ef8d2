package db

import (
	"fmt"

	"github.com/zulandar/kitlog/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the GORM models that make up the schema.
func AllModels() []interface{} {
	return []interface{}{
		&models.Build{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
