package persistence

import (
	"github.com/greenline/shopify-bridge/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the bridge's tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.SyncCheckpointModel{},
		&models.SyncRunModel{},
	)
}
