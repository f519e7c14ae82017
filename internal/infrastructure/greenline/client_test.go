package greenline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"github.com/greenline/shopify-bridge/internal/domain/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreenlineConfig_Validate(t *testing.T) {
	t.Run("valid config gets defaults", func(t *testing.T) {
		config := &Config{Endpoint: "https://api.example.com/graphql", APIKey: "key"}
		require.NoError(t, config.Validate())
		assert.Equal(t, 30, config.TimeoutSeconds)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		config := &Config{APIKey: "key"}
		assert.ErrorIs(t, config.Validate(), ErrConfigMissingEndpoint)
	})

	t.Run("missing api key", func(t *testing.T) {
		config := &Config{Endpoint: "https://api.example.com/graphql"}
		assert.ErrorIs(t, config.Validate(), ErrConfigMissingAPIKey)
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(NewConfig(server.URL, "test-key"))
	require.NoError(t, err)
	return client
}

func TestClient_FindShop(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the registration", func(t *testing.T) {
		var gotAuth string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"data": {"findShop": {"id": "shop-1", "merchantId": 42, "domain": "demo.myshopify.com", "currency": "USD"}}}`))
		})

		shop, err := client.FindShop(ctx, "demo.myshopify.com")
		require.NoError(t, err)
		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, int64(42), shop.MerchantID)
	})

	t.Run("unknown domain", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": {"findShop": null}}`))
		})

		_, err := client.FindShop(ctx, "ghost.myshopify.com")
		assert.ErrorIs(t, err, ErrShopNotFound)
	})
}

func TestClient_FindItemsByShopifyIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes items with nested variants", func(t *testing.T) {
		var gotRequest graphqlRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
			_, _ = w.Write([]byte(`{
				"data": {
					"findItemsWithShopifyId": [{
						"id": 7,
						"merchantId": 42,
						"shopifyId": "gid://shopify/Product/1",
						"name": "Linen Shirt",
						"currency": "USD",
						"itemVariants": [{
							"id": 70,
							"itemId": 7,
							"shopifyId": "gid://shopify/ProductVariant/11",
							"name": "Blue / M",
							"price": "49.90",
							"merchantSku": "LS-BLUE-M",
							"isEnabled": true,
							"selectedOptions": [{"id": 1, "name": "Color", "value": "Blue"}]
						}]
					}]
				}
			}`))
		})

		items, err := client.FindItemsByShopifyIDs(ctx, []string{"gid://shopify/Product/1"})
		require.NoError(t, err)

		ids, ok := gotRequest.Variables["shopifyIds"].([]any)
		require.True(t, ok)
		assert.Len(t, ids, 1)

		require.Len(t, items, 1)
		assert.Equal(t, int64(7), items[0].ID)
		require.Len(t, items[0].Variants, 1)
		assert.Equal(t, "LS-BLUE-M", items[0].Variants[0].MerchantSKU)
	})

	t.Run("skips the round trip for an empty id list", func(t *testing.T) {
		called := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

		items, err := client.FindItemsByShopifyIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.False(t, called)
	})

	t.Run("surfaces graphql errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"errors": [{"message": "unauthorized"}]}`))
		})

		_, err := client.FindItemsByShopifyIDs(ctx, []string{"x"})
		assert.ErrorIs(t, err, catalog.ErrStoreUnavailable)
	})
}

func TestClient_SyncProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the result and decodes the receipt", func(t *testing.T) {
		var gotRequest graphqlRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
			_, _ = w.Write([]byte(`{"data": {"syncShopifyProducts": {"success": true, "message": "ok", "failedVariantUpdates": ["v-9"]}}}`))
		})

		result := catalog.NewResult()
		result.ItemsToAdd = append(result.ItemsToAdd, &catalog.Product{ID: "gid://shopify/Product/1"})

		receipt, err := client.SyncProducts(ctx, "demo.myshopify.com", result)
		require.NoError(t, err)
		assert.True(t, receipt.Success)
		assert.Equal(t, []string{"v-9"}, receipt.FailedVariantUpdates)

		assert.Equal(t, "demo.myshopify.com", gotRequest.Variables["shop"])
		input, ok := gotRequest.Variables["input"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, input, "itemsToAdd")
	})

	t.Run("treats an empty body as a store failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": {}}`))
		})

		_, err := client.SyncProducts(ctx, "demo.myshopify.com", catalog.NewResult())
		assert.ErrorIs(t, err, catalog.ErrStoreUnavailable)
	})
}

func TestClient_Orders(t *testing.T) {
	ctx := context.Background()

	t.Run("find synced orders flattens ids", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": {"findShopifyOrders": [{"shopifyId": "o1"}, {"shopifyId": "o3"}]}}`))
		})

		synced, err := client.FindSyncedOrders(ctx, []string{"o1", "o2", "o3"})
		require.NoError(t, err)
		assert.Equal(t, []string{"o1", "o3"}, synced)
	})

	t.Run("create orders decodes the receipt", func(t *testing.T) {
		var gotRequest graphqlRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
			_, _ = w.Write([]byte(`{"data": {"createShopifyOrders": {"success": true, "failedOrders": ["o2"]}}}`))
		})

		receipt, err := client.CreateOrders(ctx, "demo.myshopify.com", []*orders.Order{
			{ID: "o1", Type: orders.OrderTypeDelivery},
			{ID: "o2", Type: orders.OrderTypeDelivery},
		})
		require.NoError(t, err)
		assert.True(t, receipt.Success)
		assert.Equal(t, []string{"o2"}, receipt.FailedOrders)

		sent, ok := gotRequest.Variables["orders"].([]any)
		require.True(t, ok)
		assert.Len(t, sent, 2)
	})

	t.Run("http failure maps to store unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.FindSyncedOrders(ctx, []string{"o1"})
		assert.ErrorIs(t, err, catalog.ErrStoreUnavailable)
	})
}
