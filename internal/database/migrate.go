package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates every persistent table, including the unique
// indexes the toggle operations depend on.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
