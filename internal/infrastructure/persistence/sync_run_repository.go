package persistence

import (
	"context"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"github.com/greenline/shopify-bridge/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSyncRunRepository implements catalog.SyncRunRepository using GORM
type GormSyncRunRepository struct {
	db *gorm.DB
}

var _ catalog.SyncRunRepository = (*GormSyncRunRepository)(nil)

// NewGormSyncRunRepository creates a new GormSyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// Save creates or updates a sync run record.
func (r *GormSyncRunRepository) Save(ctx context.Context, run *catalog.SyncRun) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(models.SyncRunModelFromDomain(run)).Error
}

// FindRecent returns the most recent runs for a shop, newest first.
func (r *GormSyncRunRepository) FindRecent(ctx context.Context, shop string, limit int) ([]catalog.SyncRun, error) {
	var rows []models.SyncRunModel
	if err := r.db.WithContext(ctx).
		Where("shop = ?", shop).
		Order("started_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	runs := make([]catalog.SyncRun, 0, len(rows))
	for i := range rows {
		runs = append(runs, *rows[i].ToDomain())
	}
	return runs, nil
}
