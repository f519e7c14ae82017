package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpoint_WindowProgress(t *testing.T) {
	products := make([]*Product, 25)
	for i := range products {
		products[i] = testProduct(fmt.Sprintf("gid://shopify/Product/%d", i+1), testVariant(fmt.Sprintf("v-%d", i+1)))
	}
	cp := NewCheckpoint("demo.myshopify.com", products)

	t.Run("windows advance in fixed batches and cap at the end", func(t *testing.T) {
		start, end := cp.Window(10)
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)

		require.NoError(t, cp.Begin())
		cp.Advance(end)

		start, end = cp.Window(10)
		assert.Equal(t, 10, start)
		assert.Equal(t, 20, end)

		require.NoError(t, cp.Begin())
		cp.Advance(end)

		start, end = cp.Window(10)
		assert.Equal(t, 20, start)
		assert.Equal(t, 25, end)
		assert.Equal(t, 5, cp.Remaining())
	})

	t.Run("release keeps the index so the batch replays", func(t *testing.T) {
		require.NoError(t, cp.Begin())
		cp.Release()

		start, end := cp.Window(10)
		assert.Equal(t, 20, start)
		assert.Equal(t, 25, end)
		assert.False(t, cp.Syncing)
	})

	t.Run("begin rejects a second concurrent window", func(t *testing.T) {
		require.NoError(t, cp.Begin())
		assert.ErrorIs(t, cp.Begin(), ErrSyncInProgress)
		cp.Release()
	})

	t.Run("begin rejects a completed sync", func(t *testing.T) {
		require.NoError(t, cp.Begin())
		cp.Advance(25)
		assert.True(t, cp.Complete())
		assert.Equal(t, 0, cp.Remaining())
		assert.ErrorIs(t, cp.Begin(), ErrSyncComplete)
	})
}

func TestCheckpoint_StaleWindowTakeover(t *testing.T) {
	newHeldCheckpoint := func() *Checkpoint {
		cp := NewCheckpoint("demo.myshopify.com", []*Product{
			testProduct("gid://shopify/Product/1", testVariant("v-1")),
		})
		require.NoError(t, cp.Begin())
		return cp
	}

	t.Run("a freshly held window blocks", func(t *testing.T) {
		cp := newHeldCheckpoint()

		assert.False(t, cp.Stale())
		assert.ErrorIs(t, cp.Begin(), ErrSyncInProgress)
	})

	t.Run("an abandoned window is taken over at the same index", func(t *testing.T) {
		cp := newHeldCheckpoint()
		cp.UpdatedAt = time.Now().Add(-2 * StaleWindowTimeout)

		assert.True(t, cp.Stale())
		require.NoError(t, cp.Begin())

		start, end := cp.Window(10)
		assert.Equal(t, 0, start)
		assert.Equal(t, 1, end)
		assert.True(t, cp.Syncing)
	})
}
