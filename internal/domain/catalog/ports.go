package catalog

import (
	"context"
	"errors"
)

var (
	// ErrSourceUnavailable indicates the remote catalog could not be
	// reached or returned a non-success response.
	ErrSourceUnavailable = errors.New("catalog: remote source unavailable")

	// ErrStoreUnavailable indicates the internal database service could
	// not be reached or returned a non-success response.
	ErrStoreUnavailable = errors.New("catalog: internal store unavailable")

	// ErrSyncRejected indicates the internal database rejected a sync
	// mutation; the response message carries the reason.
	ErrSyncRejected = errors.New("catalog: sync mutation rejected")

	// ErrCheckpointNotFound indicates no checkpoint exists for the shop.
	ErrCheckpointNotFound = errors.New("catalog: checkpoint not found")
)

// Source is the port to the remote catalog. Implementations page through the
// remote product listing by passing back the end cursor until the source
// reports no further pages.
type Source interface {
	// FetchProductsPage fetches one page of products. An empty cursor
	// requests the first page.
	FetchProductsPage(ctx context.Context, shop string, cursor string) (*Page, error)
}

// SyncReceipt is the internal database's answer to a sync mutation.
type SyncReceipt struct {
	Success              bool     `json:"success"`
	Message              string   `json:"message"`
	FailedItemUpdates    []string `json:"failedItemUpdates,omitempty"`
	FailedVariantUpdates []string `json:"failedVariantUpdates,omitempty"`
}

// Store is the port to the internal database for catalog data. Lookups are
// batched by contract; implementations must not fan out per id.
type Store interface {
	// FindItemsByShopifyIDs returns the internal items linked to any of
	// the given remote product ids, with nested variants and options.
	FindItemsByShopifyIDs(ctx context.Context, ids []string) ([]Item, error)

	// SyncProducts applies one reconciliation result for the shop. The
	// payload is declarative ("set these items to this state"), so
	// re-applying an identical result is a no-op on the database side.
	SyncProducts(ctx context.Context, shop string, result *Result) (*SyncReceipt, error)
}

// CheckpointRepository persists sync progress checkpoints per shop.
type CheckpointRepository interface {
	// Load returns the checkpoint for a shop, or ErrCheckpointNotFound.
	Load(ctx context.Context, shop string) (*Checkpoint, error)

	// Save creates or replaces the checkpoint for a shop.
	Save(ctx context.Context, checkpoint *Checkpoint) error

	// Clear removes the checkpoint for a shop.
	Clear(ctx context.Context, shop string) error
}

// SyncRunRepository persists the history of chunked sync runs.
type SyncRunRepository interface {
	// Save creates or updates a sync run record.
	Save(ctx context.Context, run *SyncRun) error

	// FindRecent returns the most recent runs for a shop, newest first.
	FindRecent(ctx context.Context, shop string, limit int) ([]SyncRun, error)
}
