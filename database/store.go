package database

import (
	"fmt"

	"gorm.io/gorm"

	"vedomist/models"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Employee{}, &models.Settings{})
}

// SaveRoster replaces the stored roster with the current one. A re-import is
// a full replacement, so the previous rows go away in the same transaction.
func SaveRoster(db *gorm.DB, employees []*models.Employee) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Employee{}).Error; err != nil {
			return fmt.Errorf("SaveRoster: failed to clear previous roster: %w", err)
		}

		if len(employees) == 0 {
			return nil
		}

		if err := tx.Create(employees).Error; err != nil {
			return fmt.Errorf("SaveRoster: failed to insert roster: %w", err)
		}

		return nil
	})
}

// LoadRoster returns the stored roster in original input order.
func LoadRoster(db *gorm.DB) ([]*models.Employee, error) {
	var employees []*models.Employee

	tx := db.Order("sort_order").Find(&employees)
	if tx.Error != nil {
		return nil, fmt.Errorf("LoadRoster: %w", tx.Error)
	}

	return employees, nil
}

// SaveSettings upserts the single settings row.
func SaveSettings(db *gorm.DB, settings models.Settings) error {
	settings.ID = 1

	tx := db.Save(&settings)
	if tx.Error != nil {
		return fmt.Errorf("SaveSettings: %w", tx.Error)
	}

	return nil
}

// LoadSettings returns the stored settings; a missing row yields zero-value
// settings so first runs work without seeding.
func LoadSettings(db *gorm.DB) (models.Settings, error) {
	var settings models.Settings

	tx := db.Limit(1).Find(&settings)
	if tx.Error != nil {
		return models.Settings{}, fmt.Errorf("LoadSettings: %w", tx.Error)
	}

	return settings, nil
}
