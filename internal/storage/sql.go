package storage

import (
	"fmt"

	"github.com/zulandar/kitlog/internal/db"
	"github.com/zulandar/kitlog/internal/models"
	"gorm.io/gorm"
)

// SQL persists the collection in the builds table.
type SQL struct {
	db *gorm.DB
}

// NewSQL migrates the schema and returns a persister over gormDB.
func NewSQL(gormDB *gorm.DB) (*SQL, error) {
	if err := db.AutoMigrate(gormDB); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &SQL{db: gormDB}, nil
}

// Load returns every stored build, oldest first.
func (s *SQL) Load() ([]models.Build, error) {
	var builds []models.Build
	if err := s.db.Order("created_at ASC, id ASC").Find(&builds).Error; err != nil {
		return nil, fmt.Errorf("storage: load builds: %w", err)
	}
	return builds, nil
}

// Save replaces the table contents with builds in one transaction.
func (s *SQL) Save(builds []models.Build) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Build{}).Error; err != nil {
			return fmt.Errorf("clear builds: %w", err)
		}
		if len(builds) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(builds, 100).Error; err != nil {
			return fmt.Errorf("insert builds: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: save builds: %w", err)
	}
	return nil
}
