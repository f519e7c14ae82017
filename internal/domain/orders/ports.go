package orders

import "context"

// FetchDirection selects which way a cursor-based page request walks.
type FetchDirection string

const (
	FetchForward  FetchDirection = "forward"
	FetchBackward FetchDirection = "backward"
)

// IsValid checks whether the fetch direction is one of the known values.
func (d FetchDirection) IsValid() bool {
	return d == FetchForward || d == FetchBackward
}

// Source is the port to the remote order listing.
type Source interface {
	// FetchOrdersPage fetches one page of orders. An empty cursor with
	// FetchForward requests the first page.
	FetchOrdersPage(ctx context.Context, shop string, cursor string, direction FetchDirection) (*Page, error)
}

// SyncReceipt is the internal database's answer to an order sync mutation.
type SyncReceipt struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	FailedOrders []string `json:"failedOrders,omitempty"`
}

// Store is the port to the internal database for order data.
type Store interface {
	// FindSyncedOrders returns which of the given order ids the internal
	// database already holds.
	FindSyncedOrders(ctx context.Context, ids []string) ([]string, error)

	// CreateOrders pushes classified orders into the internal database.
	CreateOrders(ctx context.Context, shop string, records []*Order) (*SyncReceipt, error)
}

// CursorStore keeps the last served page position per caller so a refresh
// can replay the page the caller is looking at.
type CursorStore interface {
	// SaveCursor remembers the cursor and direction of the page last
	// served to the shop.
	SaveCursor(ctx context.Context, shop string, cursor string, direction FetchDirection) error

	// LoadCursor returns the remembered position. When none is set it
	// returns an empty cursor and FetchForward.
	LoadCursor(ctx context.Context, shop string) (string, FetchDirection, error)
}
