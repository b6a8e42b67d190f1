package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or extends the tables of the given models. Columns added to
// a model later (name, aadhaar_number on users) are added to existing tables.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Tables lists the tables currently present in the connected database.
func Tables(db *gorm.DB) ([]string, error) {
	tables, err := db.Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}
