package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"go.uber.org/zap"
)

const (
	// DefaultWindowSize is how many products one sync window applies.
	DefaultWindowSize = 10

	// DefaultFetchRetryLimit bounds how many page fetches may fail across
	// one catalog fetch before the whole fetch is abandoned.
	DefaultFetchRetryLimit = 10
)

// Options tunes the sync services. Zero values fall back to the defaults.
type Options struct {
	WindowSize      int
	FetchRetryLimit int
}

func (o Options) withDefaults() Options {
	if o.WindowSize <= 0 {
		o.WindowSize = DefaultWindowSize
	}
	if o.FetchRetryLimit <= 0 {
		o.FetchRetryLimit = DefaultFetchRetryLimit
	}
	return o
}

// ---------------------------------------------------------------------------
// CatalogService
// ---------------------------------------------------------------------------

// FetchReport is the outcome of a full catalog fetch: the reconciliation
// preview plus how much work a chunked sync would have to do.
type FetchReport struct {
	Result       *catalog.Result `json:"result"`
	ProductCount int             `json:"product_count"`
	PageCount    int             `json:"page_count"`
}

// WindowReport is the outcome of one sync window.
type WindowReport struct {
	Status      catalog.SyncStatus `json:"status"`
	WindowStart int                `json:"window_start"`
	WindowEnd   int                `json:"window_end"`
	Remaining   int                `json:"remaining"`
	Complete    bool               `json:"complete"`
	Result      *catalog.Result    `json:"result,omitempty"`
}

// StatusReport describes where a shop's chunked sync currently stands.
type StatusReport struct {
	Exists          bool              `json:"exists"`
	Syncing         bool              `json:"syncing"`
	LastSyncedIndex int               `json:"last_synced_index"`
	ProductCount    int               `json:"product_count"`
	Complete        bool              `json:"complete"`
	RecentRuns      []catalog.SyncRun `json:"recent_runs,omitempty"`
}

// CatalogService drives catalog reconciliation: fetching the remote catalog,
// diffing it against the internal database and applying the diff in bounded
// windows.
type CatalogService struct {
	source      catalog.Source
	store       catalog.Store
	checkpoints catalog.CheckpointRepository
	runs        catalog.SyncRunRepository
	logger      *zap.Logger
	opts        Options
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	source catalog.Source,
	store catalog.Store,
	checkpoints catalog.CheckpointRepository,
	runs catalog.SyncRunRepository,
	logger *zap.Logger,
	opts Options,
) *CatalogService {
	return &CatalogService{
		source:      source,
		store:       store,
		checkpoints: checkpoints,
		runs:        runs,
		logger:      logger,
		opts:        opts.withDefaults(),
	}
}

// FetchCatalog pulls every remote product page, reconciles the full snapshot
// against the internal database and stores the snapshot as a fresh
// checkpoint so SyncWindow can apply it in batches.
func (s *CatalogService) FetchCatalog(ctx context.Context, shop string) (*FetchReport, error) {
	products, pages, err := s.fetchAll(ctx, shop)
	if err != nil {
		return nil, err
	}

	result, err := s.reconcile(ctx, products)
	if err != nil {
		return nil, err
	}

	if err := s.checkpoints.Save(ctx, catalog.NewCheckpoint(shop, products)); err != nil {
		return nil, fmt.Errorf("save checkpoint: %w", err)
	}

	s.logger.Info("catalog fetched",
		zap.String("shop", shop),
		zap.Int("products", len(products)),
		zap.Int("pages", pages),
		zap.Bool("has_changes", result.HasChanges()),
	)

	return &FetchReport{
		Result:       result,
		ProductCount: len(products),
		PageCount:    pages,
	}, nil
}

// fetchAll pages through the remote catalog. A failed page fetch is retried
// with the same cursor; the retry budget is shared across the whole walk.
func (s *CatalogService) fetchAll(ctx context.Context, shop string) ([]*catalog.Product, int, error) {
	var (
		products []*catalog.Product
		cursor   string
		pages    int
		retries  int
	)
	for {
		page, err := s.source.FetchProductsPage(ctx, shop, cursor)
		if err != nil {
			retries++
			if retries > s.opts.FetchRetryLimit {
				return nil, pages, fmt.Errorf("fetch products after %d retries: %w", retries-1, err)
			}
			s.logger.Warn("product page fetch failed, retrying",
				zap.String("shop", shop),
				zap.String("cursor", cursor),
				zap.Int("attempt", retries),
				zap.Error(err),
			)
			continue
		}
		products = append(products, page.Products...)
		pages++
		if !page.HasNextPage {
			return products, pages, nil
		}
		cursor = page.EndCursor
	}
}

// reconcile looks up the internal items for the given products in one
// batched query and diffs the two sides.
func (s *CatalogService) reconcile(ctx context.Context, products []*catalog.Product) (*catalog.Result, error) {
	items, err := s.store.FindItemsByShopifyIDs(ctx, productIDs(products))
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	return catalog.Reconcile(products, items), nil
}

func productIDs(products []*catalog.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

// SyncWindow reconciles and applies the next batch of the stored snapshot.
// A batch whose diff is empty is skipped without touching the database. On
// failure the index stays where it was, so the next call replays the same
// batch.
func (s *CatalogService) SyncWindow(ctx context.Context, shop string) (*WindowReport, error) {
	cp, err := s.checkpoints.Load(ctx, shop)
	if err != nil {
		return nil, err
	}
	if cp.Stale() {
		s.logger.Warn("taking over stale sync window",
			zap.String("shop", shop),
			zap.Int("last_synced_index", cp.LastSyncedIndex),
			zap.Time("held_since", cp.UpdatedAt),
		)
	}
	if err := cp.Begin(); err != nil {
		return nil, err
	}
	if err := s.checkpoints.Save(ctx, cp); err != nil {
		return nil, fmt.Errorf("save checkpoint: %w", err)
	}

	start, end := cp.Window(s.opts.WindowSize)
	run := catalog.NewSyncRun(shop, start, end)

	result, err := s.applyWindow(ctx, shop, cp.Data[start:end])
	if err != nil {
		cp.Release()
		run.Finish(catalog.SyncStatusFailed, result, err)
		s.persistOutcome(ctx, cp, run)
		s.logger.Error("sync window failed",
			zap.String("shop", shop),
			zap.Int("window_start", start),
			zap.Int("window_end", end),
			zap.Error(err),
		)
		return nil, err
	}

	cp.Advance(end)
	status := catalog.SyncStatusApplied
	if !result.HasChanges() {
		status = catalog.SyncStatusSkipped
	}
	run.Finish(status, result, nil)
	s.persistOutcome(ctx, cp, run)

	s.logger.Info("sync window finished",
		zap.String("shop", shop),
		zap.String("status", status.String()),
		zap.Int("window_start", start),
		zap.Int("window_end", end),
		zap.Int("remaining", cp.Remaining()),
	)

	return &WindowReport{
		Status:      status,
		WindowStart: start,
		WindowEnd:   end,
		Remaining:   cp.Remaining(),
		Complete:    cp.Complete(),
		Result:      result,
	}, nil
}

// applyWindow diffs one batch against the internal database and pushes the
// diff when it is not empty.
func (s *CatalogService) applyWindow(ctx context.Context, shop string, window []*catalog.Product) (*catalog.Result, error) {
	result, err := s.reconcile(ctx, window)
	if err != nil {
		return nil, err
	}
	if !result.HasChanges() {
		return result, nil
	}

	receipt, err := s.store.SyncProducts(ctx, shop, result)
	if err != nil {
		return result, fmt.Errorf("sync products: %w", err)
	}
	if !receipt.Success {
		return result, fmt.Errorf("%w: %s", catalog.ErrSyncRejected, receipt.Message)
	}
	if len(receipt.FailedItemUpdates) > 0 || len(receipt.FailedVariantUpdates) > 0 {
		s.logger.Warn("sync applied with partial failures",
			zap.String("shop", shop),
			zap.Strings("failed_items", receipt.FailedItemUpdates),
			zap.Strings("failed_variants", receipt.FailedVariantUpdates),
		)
	}
	return result, nil
}

// persistOutcome writes the checkpoint and the run record. Both are best
// effort at this point; the window outcome itself has already been decided.
func (s *CatalogService) persistOutcome(ctx context.Context, cp *catalog.Checkpoint, run *catalog.SyncRun) {
	if err := s.checkpoints.Save(ctx, cp); err != nil {
		s.logger.Error("failed to persist checkpoint",
			zap.String("shop", cp.Shop),
			zap.Error(err),
		)
	}
	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.Error("failed to persist sync run",
			zap.String("shop", run.Shop),
			zap.Error(err),
		)
	}
}

// Status reports the shop's checkpoint position and recent run history.
func (s *CatalogService) Status(ctx context.Context, shop string) (*StatusReport, error) {
	cp, err := s.checkpoints.Load(ctx, shop)
	if errors.Is(err, catalog.ErrCheckpointNotFound) {
		return &StatusReport{}, nil
	}
	if err != nil {
		return nil, err
	}

	runs, err := s.runs.FindRecent(ctx, shop, 10)
	if err != nil {
		return nil, fmt.Errorf("find recent runs: %w", err)
	}

	return &StatusReport{
		Exists:          true,
		Syncing:         cp.Syncing,
		LastSyncedIndex: cp.LastSyncedIndex,
		ProductCount:    len(cp.Data),
		Complete:        cp.Complete(),
		RecentRuns:      runs,
	}, nil
}
