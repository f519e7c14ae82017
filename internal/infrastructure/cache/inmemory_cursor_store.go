package cache

import (
	"context"
	"sync"

	"github.com/greenline/shopify-bridge/internal/domain/orders"
)

type cursorEntry struct {
	cursor    string
	direction orders.FetchDirection
}

// InMemoryCursorStore implements orders.CursorStore with a process-local map.
// This is suitable for single-instance deployments and tests.
type InMemoryCursorStore struct {
	mu      sync.RWMutex
	entries map[string]cursorEntry
}

var _ orders.CursorStore = (*InMemoryCursorStore)(nil)

// NewInMemoryCursorStore creates a new in-memory cursor store
func NewInMemoryCursorStore() *InMemoryCursorStore {
	return &InMemoryCursorStore{entries: make(map[string]cursorEntry)}
}

// SaveCursor remembers the cursor and direction of the page last served to
// the shop.
func (s *InMemoryCursorStore) SaveCursor(_ context.Context, shop string, cursor string, direction orders.FetchDirection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[shop] = cursorEntry{cursor: cursor, direction: direction}
	return nil
}

// LoadCursor returns the remembered position, or the first forward page when
// none is set.
func (s *InMemoryCursorStore) LoadCursor(_ context.Context, shop string) (string, orders.FetchDirection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[shop]
	if !ok {
		return "", orders.FetchForward, nil
	}
	return entry.cursor, entry.direction, nil
}
