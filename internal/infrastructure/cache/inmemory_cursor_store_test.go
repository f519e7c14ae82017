package cache

import (
	"context"
	"testing"

	"github.com/greenline/shopify-bridge/internal/domain/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCursorStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCursorStore()

	t.Run("empty store serves the first forward page", func(t *testing.T) {
		cursor, direction, err := store.LoadCursor(ctx, "demo.myshopify.com")
		require.NoError(t, err)
		assert.Empty(t, cursor)
		assert.Equal(t, orders.FetchForward, direction)
	})

	t.Run("round trip keeps cursor and direction", func(t *testing.T) {
		require.NoError(t, store.SaveCursor(ctx, "demo.myshopify.com", "cur-1", orders.FetchBackward))

		cursor, direction, err := store.LoadCursor(ctx, "demo.myshopify.com")
		require.NoError(t, err)
		assert.Equal(t, "cur-1", cursor)
		assert.Equal(t, orders.FetchBackward, direction)
	})

	t.Run("positions are scoped per shop", func(t *testing.T) {
		cursor, direction, err := store.LoadCursor(ctx, "other.myshopify.com")
		require.NoError(t, err)
		assert.Empty(t, cursor)
		assert.Equal(t, orders.FetchForward, direction)
	})
}

func TestDecodeCursor(t *testing.T) {
	t.Run("decodes direction and cursor", func(t *testing.T) {
		cursor, direction, err := decodeCursor("backward|cur-9")
		require.NoError(t, err)
		assert.Equal(t, "cur-9", cursor)
		assert.Equal(t, orders.FetchBackward, direction)
	})

	t.Run("cursor may contain separators", func(t *testing.T) {
		cursor, _, err := decodeCursor("forward|a|b")
		require.NoError(t, err)
		assert.Equal(t, "a|b", cursor)
	})

	t.Run("rejects malformed entries", func(t *testing.T) {
		_, _, err := decodeCursor("no-separator")
		assert.Error(t, err)

		_, _, err = decodeCursor("sideways|cur")
		assert.Error(t, err)
	})
}
