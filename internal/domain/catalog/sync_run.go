package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Sync run history
// ---------------------------------------------------------------------------

// SyncStatus is the lifecycle state of one chunked sync window.
type SyncStatus string

const (
	SyncStatusRunning SyncStatus = "running"
	SyncStatusApplied SyncStatus = "applied"
	SyncStatusSkipped SyncStatus = "skipped"
	SyncStatusFailed  SyncStatus = "failed"
)

// IsValid checks whether the sync status is one of the known states.
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusRunning, SyncStatusApplied, SyncStatusSkipped, SyncStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of the sync status.
func (s SyncStatus) String() string {
	return string(s)
}

// SyncRun records the outcome of one sync window for audit and status
// reporting.
type SyncRun struct {
	ID           string
	Shop         string
	Status       SyncStatus
	WindowStart  int
	WindowEnd    int
	ItemsAdded   int
	ItemsUpdated int
	ItemsRemoved int
	Error        string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// NewSyncRun starts a run record for the window [start, end).
func NewSyncRun(shop string, start, end int) *SyncRun {
	return &SyncRun{
		ID:          uuid.New().String(),
		Shop:        shop,
		Status:      SyncStatusRunning,
		WindowStart: start,
		WindowEnd:   end,
		StartedAt:   time.Now(),
	}
}

// Finish closes the run with a terminal status and the counts from the
// applied result. A nil result leaves the counts at zero.
func (r *SyncRun) Finish(status SyncStatus, result *Result, err error) {
	r.Status = status
	if result != nil {
		r.ItemsAdded = len(result.ItemsToAdd)
		r.ItemsUpdated = len(result.ItemsToUpdate)
		r.ItemsRemoved = len(result.ItemsToRemove)
	}
	if err != nil {
		r.Error = err.Error()
	}
	now := time.Now()
	r.FinishedAt = &now
}
