package sync

import (
	"context"
	"fmt"

	"github.com/greenline/shopify-bridge/internal/domain/orders"
	"go.uber.org/zap"
)

// OrdersPage is one classified page of orders as served to a caller.
type OrdersPage struct {
	Records  []*orders.Order `json:"records"`
	Warnings []string        `json:"warnings,omitempty"`
	PageInfo orders.PageInfo `json:"page_info"`
}

// SyncOrdersReport is the outcome of pushing one page of orders into the
// internal database.
type SyncOrdersReport struct {
	Pushed        int      `json:"pushed"`
	AlreadySynced int      `json:"already_synced"`
	Skipped       int      `json:"skipped"`
	FailedOrders  []string `json:"failed_orders,omitempty"`
}

// ---------------------------------------------------------------------------
// OrderService
// ---------------------------------------------------------------------------

// OrderService serves classified order pages and pushes them into the
// internal database. The position of the last served page is remembered per
// shop so Refresh and SyncOrders act on the page the caller is looking at.
type OrderService struct {
	source  orders.Source
	store   orders.Store
	cursors orders.CursorStore
	logger  *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	source orders.Source,
	store orders.Store,
	cursors orders.CursorStore,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		source:  source,
		store:   store,
		cursors: cursors,
		logger:  logger,
	}
}

// FetchPage serves one classified page and remembers its position.
func (s *OrderService) FetchPage(ctx context.Context, shop string, cursor string, direction orders.FetchDirection) (*OrdersPage, error) {
	if direction == "" {
		direction = orders.FetchForward
	}
	if !direction.IsValid() {
		return nil, fmt.Errorf("orders: invalid fetch direction %q", direction)
	}

	page, err := s.classifyPage(ctx, shop, cursor, direction)
	if err != nil {
		return nil, err
	}

	if err := s.cursors.SaveCursor(ctx, shop, cursor, direction); err != nil {
		s.logger.Warn("failed to remember order page cursor",
			zap.String("shop", shop),
			zap.Error(err),
		)
	}
	return page, nil
}

// Refresh replays the page last served to the shop. With no remembered
// position it serves the first page.
func (s *OrderService) Refresh(ctx context.Context, shop string) (*OrdersPage, error) {
	cursor, direction, err := s.cursors.LoadCursor(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("load cursor: %w", err)
	}
	return s.classifyPage(ctx, shop, cursor, direction)
}

// classifyPage fetches one remote page, converts it into internal records
// and marks the ones the internal database already holds.
func (s *OrderService) classifyPage(ctx context.Context, shop string, cursor string, direction orders.FetchDirection) (*OrdersPage, error) {
	page, err := s.source.FetchOrdersPage(ctx, shop, cursor, direction)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	records, warnings := orders.Classify(page.Orders)
	for _, w := range warnings {
		s.logger.Warn("order skipped during classification",
			zap.String("shop", shop),
			zap.String("reason", w),
		)
	}

	if len(records) > 0 {
		synced, err := s.store.FindSyncedOrders(ctx, orders.CollectIDs(records))
		if err != nil {
			return nil, fmt.Errorf("find synced orders: %w", err)
		}
		orders.MarkSynced(records, synced)
	}

	return &OrdersPage{
		Records:  records,
		Warnings: warnings,
		PageInfo: page.PageInfo,
	}, nil
}

// SyncOrders pushes the unsynced records of the last served page into the
// internal database.
func (s *OrderService) SyncOrders(ctx context.Context, shop string) (*SyncOrdersReport, error) {
	cursor, direction, err := s.cursors.LoadCursor(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("load cursor: %w", err)
	}
	page, err := s.classifyPage(ctx, shop, cursor, direction)
	if err != nil {
		return nil, err
	}

	var pending []*orders.Order
	already := 0
	for _, record := range page.Records {
		if record.Synced {
			already++
			continue
		}
		pending = append(pending, record)
	}

	report := &SyncOrdersReport{
		AlreadySynced: already,
		Skipped:       len(page.Warnings),
	}
	if len(pending) == 0 {
		return report, nil
	}

	receipt, err := s.store.CreateOrders(ctx, shop, pending)
	if err != nil {
		return nil, fmt.Errorf("create orders: %w", err)
	}
	if !receipt.Success {
		return nil, fmt.Errorf("%w: %s", orders.ErrSyncRejected, receipt.Message)
	}

	report.Pushed = len(pending) - len(receipt.FailedOrders)
	report.FailedOrders = receipt.FailedOrders
	s.logger.Info("orders synced",
		zap.String("shop", shop),
		zap.Int("pushed", report.Pushed),
		zap.Int("already_synced", already),
		zap.Int("failed", len(receipt.FailedOrders)),
	)
	return report, nil
}
