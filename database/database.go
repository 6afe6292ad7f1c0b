package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the payroll database. The DSN comes from the caller so
// tools and tests can point it anywhere.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
