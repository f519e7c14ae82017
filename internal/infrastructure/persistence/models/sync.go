package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"gorm.io/datatypes"
)

// SyncCheckpointModel is the persistence model for the catalog.Checkpoint
// entity. The fetched snapshot is stored as a JSON document so a sync can
// resume without refetching the remote catalog.
type SyncCheckpointModel struct {
	Shop            string         `gorm:"type:varchar(255);primaryKey"`
	Data            datatypes.JSON `gorm:"not null"`
	Syncing         bool           `gorm:"not null;default:false"`
	LastSyncedIndex int            `gorm:"not null;default:0"`
	UpdatedAt       time.Time      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SyncCheckpointModel) TableName() string {
	return "sync_checkpoints"
}

// ToDomain converts the persistence model to a domain Checkpoint entity.
func (m *SyncCheckpointModel) ToDomain() (*catalog.Checkpoint, error) {
	var data []*catalog.Product
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return nil, fmt.Errorf("decode checkpoint snapshot: %w", err)
		}
	}
	return &catalog.Checkpoint{
		Shop:            m.Shop,
		Data:            data,
		Syncing:         m.Syncing,
		LastSyncedIndex: m.LastSyncedIndex,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

// CheckpointModelFromDomain converts a domain Checkpoint to its persistence model.
func CheckpointModelFromDomain(cp *catalog.Checkpoint) (*SyncCheckpointModel, error) {
	data, err := json.Marshal(cp.Data)
	if err != nil {
		return nil, fmt.Errorf("encode checkpoint snapshot: %w", err)
	}
	return &SyncCheckpointModel{
		Shop:            cp.Shop,
		Data:            data,
		Syncing:         cp.Syncing,
		LastSyncedIndex: cp.LastSyncedIndex,
		UpdatedAt:       cp.UpdatedAt,
	}, nil
}

// SyncRunModel is the persistence model for the catalog.SyncRun entity.
type SyncRunModel struct {
	ID           string             `gorm:"type:uuid;primaryKey"`
	Shop         string             `gorm:"type:varchar(255);not null;index"`
	Status       catalog.SyncStatus `gorm:"type:varchar(20);not null"`
	WindowStart  int                `gorm:"not null;default:0"`
	WindowEnd    int                `gorm:"not null;default:0"`
	ItemsAdded   int                `gorm:"not null;default:0"`
	ItemsUpdated int                `gorm:"not null;default:0"`
	ItemsRemoved int                `gorm:"not null;default:0"`
	Error        string             `gorm:"type:text"`
	StartedAt    time.Time          `gorm:"not null;index"`
	FinishedAt   *time.Time
}

// TableName returns the table name for GORM
func (SyncRunModel) TableName() string {
	return "sync_runs"
}

// ToDomain converts the persistence model to a domain SyncRun entity.
func (m *SyncRunModel) ToDomain() *catalog.SyncRun {
	return &catalog.SyncRun{
		ID:           m.ID,
		Shop:         m.Shop,
		Status:       m.Status,
		WindowStart:  m.WindowStart,
		WindowEnd:    m.WindowEnd,
		ItemsAdded:   m.ItemsAdded,
		ItemsUpdated: m.ItemsUpdated,
		ItemsRemoved: m.ItemsRemoved,
		Error:        m.Error,
		StartedAt:    m.StartedAt,
		FinishedAt:   m.FinishedAt,
	}
}

// SyncRunModelFromDomain converts a domain SyncRun to its persistence model.
func SyncRunModelFromDomain(run *catalog.SyncRun) *SyncRunModel {
	return &SyncRunModel{
		ID:           run.ID,
		Shop:         run.Shop,
		Status:       run.Status,
		WindowStart:  run.WindowStart,
		WindowEnd:    run.WindowEnd,
		ItemsAdded:   run.ItemsAdded,
		ItemsUpdated: run.ItemsUpdated,
		ItemsRemoved: run.ItemsRemoved,
		Error:        run.Error,
		StartedAt:    run.StartedAt,
		FinishedAt:   run.FinishedAt,
	}
}
