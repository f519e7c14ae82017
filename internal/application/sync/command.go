package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/greenline/shopify-bridge/internal/domain/orders"
)

// ErrUnknownCommand is returned when the dispatcher receives a command type
// it has no handler for.
var ErrUnknownCommand = errors.New("sync: unknown command")

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// Command is the closed set of operations the bridge accepts. Each command
// names the shop it acts on; every other input rides on the concrete type.
type Command interface {
	isCommand()
	ShopDomain() string
}

// FetchCatalogCommand fetches the full remote catalog, reconciles it against
// the internal database and stores the snapshot for a later chunked sync.
type FetchCatalogCommand struct {
	Shop string
}

// SyncWindowCommand applies the next batch of the stored snapshot to the
// internal database.
type SyncWindowCommand struct {
	Shop string
}

// CatalogStatusCommand reports the progress of the stored snapshot.
type CatalogStatusCommand struct {
	Shop string
}

// FetchOrdersCommand serves one page of classified orders.
type FetchOrdersCommand struct {
	Shop      string
	Cursor    string
	Direction orders.FetchDirection
}

// RefreshOrdersCommand replays the page last served to the shop.
type RefreshOrdersCommand struct {
	Shop string
}

// SyncOrdersCommand pushes the unsynced records of the last served page into
// the internal database.
type SyncOrdersCommand struct {
	Shop string
}

func (FetchCatalogCommand) isCommand()  {}
func (SyncWindowCommand) isCommand()    {}
func (CatalogStatusCommand) isCommand() {}
func (FetchOrdersCommand) isCommand()   {}
func (RefreshOrdersCommand) isCommand() {}
func (SyncOrdersCommand) isCommand()    {}

func (c FetchCatalogCommand) ShopDomain() string  { return c.Shop }
func (c SyncWindowCommand) ShopDomain() string    { return c.Shop }
func (c CatalogStatusCommand) ShopDomain() string { return c.Shop }
func (c FetchOrdersCommand) ShopDomain() string   { return c.Shop }
func (c RefreshOrdersCommand) ShopDomain() string { return c.Shop }
func (c SyncOrdersCommand) ShopDomain() string    { return c.Shop }

// ---------------------------------------------------------------------------
// Dispatcher
// ---------------------------------------------------------------------------

// Dispatcher routes commands to the catalog and order services.
type Dispatcher struct {
	catalog *CatalogService
	orders  *OrderService
}

// NewDispatcher creates a dispatcher over the two services.
func NewDispatcher(catalog *CatalogService, orders *OrderService) *Dispatcher {
	return &Dispatcher{catalog: catalog, orders: orders}
}

// Execute runs one command and returns its typed result.
func (d *Dispatcher) Execute(ctx context.Context, cmd Command) (any, error) {
	switch c := cmd.(type) {
	case FetchCatalogCommand:
		return d.catalog.FetchCatalog(ctx, c.Shop)
	case SyncWindowCommand:
		return d.catalog.SyncWindow(ctx, c.Shop)
	case CatalogStatusCommand:
		return d.catalog.Status(ctx, c.Shop)
	case FetchOrdersCommand:
		return d.orders.FetchPage(ctx, c.Shop, c.Cursor, c.Direction)
	case RefreshOrdersCommand:
		return d.orders.Refresh(ctx, c.Shop)
	case SyncOrdersCommand:
		return d.orders.SyncOrders(ctx, c.Shop)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}
