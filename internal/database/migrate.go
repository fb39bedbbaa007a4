package database

import (
	"fmt"

	"ganboo/internal/models"

	"gorm.io/gorm"
)

// Models lists every table owned by the relationship store.
func Models() []any {
	return []any{
		&models.User{},
		&models.Friend{},
		&models.IncomingRequest{},
		&models.OutgoingRequest{},
	}
}

// Migrate creates or updates the schema for all store tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
