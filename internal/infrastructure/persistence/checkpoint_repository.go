package persistence

import (
	"context"
	"errors"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"github.com/greenline/shopify-bridge/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCheckpointRepository implements catalog.CheckpointRepository using GORM
type GormCheckpointRepository struct {
	db *gorm.DB
}

var _ catalog.CheckpointRepository = (*GormCheckpointRepository)(nil)

// NewGormCheckpointRepository creates a new GormCheckpointRepository
func NewGormCheckpointRepository(db *gorm.DB) *GormCheckpointRepository {
	return &GormCheckpointRepository{db: db}
}

// Load returns the checkpoint for a shop.
func (r *GormCheckpointRepository) Load(ctx context.Context, shop string) (*catalog.Checkpoint, error) {
	var model models.SyncCheckpointModel
	if err := r.db.WithContext(ctx).
		Where("shop = ?", shop).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCheckpointNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// Save creates or replaces the checkpoint for a shop.
func (r *GormCheckpointRepository) Save(ctx context.Context, checkpoint *catalog.Checkpoint) error {
	model, err := models.CheckpointModelFromDomain(checkpoint)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// Clear removes the checkpoint for a shop.
func (r *GormCheckpointRepository) Clear(ctx context.Context, shop string) error {
	return r.db.WithContext(ctx).
		Where("shop = ?", shop).
		Delete(&models.SyncCheckpointModel{}).Error
}
