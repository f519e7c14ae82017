package catalog

import (
	"errors"
	"time"
)

var (
	// ErrSyncInProgress is returned when a sync window is requested
	// while another window for the same shop is still running.
	ErrSyncInProgress = errors.New("catalog: sync already in progress")

	// ErrSyncComplete is returned when a sync window is requested after
	// every batch has been applied.
	ErrSyncComplete = errors.New("catalog: sync already complete")
)

// StaleWindowTimeout bounds how long a held window blocks other callers.
// A crash between the Begin save and the outcome save would otherwise leave
// the checkpoint locked with no way back short of a full refetch.
const StaleWindowTimeout = 5 * time.Minute

// ---------------------------------------------------------------------------
// Checkpoint
// ---------------------------------------------------------------------------

// Checkpoint is the persisted progress of a chunked catalog sync. It carries
// the fetched snapshot so a sync can resume after a crash without refetching
// or re-reconciling the remote catalog.
type Checkpoint struct {
	Shop            string
	Data            []*Product
	Syncing         bool
	LastSyncedIndex int
	UpdatedAt       time.Time
}

// NewCheckpoint builds a fresh checkpoint over a fetched snapshot with no
// progress recorded.
func NewCheckpoint(shop string, data []*Product) *Checkpoint {
	return &Checkpoint{
		Shop:            shop,
		Data:            data,
		Syncing:         false,
		LastSyncedIndex: 0,
		UpdatedAt:       time.Now(),
	}
}

// Begin marks the checkpoint as owning the current window. It fails when
// another window is already running or when nothing remains to sync. A
// window whose owner stopped saving progress for StaleWindowTimeout is
// taken over; the index never moved, so the same batch is replayed.
func (c *Checkpoint) Begin() error {
	if c.Syncing && !c.Stale() {
		return ErrSyncInProgress
	}
	if c.Complete() {
		return ErrSyncComplete
	}
	c.Syncing = true
	c.UpdatedAt = time.Now()
	return nil
}

// Window returns the half-open slice bounds [start, end) of the next batch,
// capped at the snapshot length.
func (c *Checkpoint) Window(size int) (start, end int) {
	start = c.LastSyncedIndex
	end = start + size
	if end > len(c.Data) {
		end = len(c.Data)
	}
	return start, end
}

// Advance records that every product up to end (exclusive) has been applied
// and releases the window.
func (c *Checkpoint) Advance(end int) {
	c.LastSyncedIndex = end
	c.Syncing = false
	c.UpdatedAt = time.Now()
}

// Release gives up the current window without moving the index, so a retry
// replays the same batch.
func (c *Checkpoint) Release() {
	c.Syncing = false
	c.UpdatedAt = time.Now()
}

// Stale reports whether a held window has gone without progress for longer
// than StaleWindowTimeout.
func (c *Checkpoint) Stale() bool {
	return c.Syncing && time.Since(c.UpdatedAt) >= StaleWindowTimeout
}

// Complete reports whether every product in the snapshot has been applied.
func (c *Checkpoint) Complete() bool {
	return c.LastSyncedIndex >= len(c.Data)
}

// Remaining returns how many products have not been applied yet.
func (c *Checkpoint) Remaining() int {
	if c.Complete() {
		return 0
	}
	return len(c.Data) - c.LastSyncedIndex
}
