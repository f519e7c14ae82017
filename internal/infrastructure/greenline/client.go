package greenline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"github.com/greenline/shopify-bridge/internal/domain/orders"
)

// maxResponseSize is the maximum allowed response size from the Greenline API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// ErrShopNotFound indicates the shop domain is not registered in Greenline.
var ErrShopNotFound = errors.New("greenline: shop not found")

const findShopQuery = `
query FindShop($domain: String!) {
  findShop(domain: $domain) {
    id
    merchantId
    domain
    currency
  }
}`

const findItemsQuery = `
query FindItemsWithShopifyId($shopifyIds: [String!]!) {
  findItemsWithShopifyId(shopifyIds: $shopifyIds) {
    id
    merchantId
    shopifyId
    name
    currency
    imageUrl
    description
    itemVariants {
      id
      itemId
      shopifyId
      name
      price
      merchantSku
      imageUrl
      isEnabled
      selectedOptions { id name value }
    }
  }
}`

const syncProductsMutation = `
mutation SyncShopifyProducts($shop: String!, $input: ShopifyProductSyncInput!) {
  syncShopifyProducts(shop: $shop, input: $input) {
    success
    message
    failedItemUpdates
    failedVariantUpdates
  }
}`

const findOrdersQuery = `
query FindShopifyOrders($shopifyIds: [String!]!) {
  findShopifyOrders(shopifyIds: $shopifyIds) {
    shopifyId
  }
}`

const createOrdersMutation = `
mutation CreateShopifyOrders($shop: String!, $orders: [ShopifyOrderInput!]!) {
  createShopifyOrders(shop: $shop, orders: $orders) {
    success
    message
    failedOrders
  }
}`

// Shop is a shop registration in the Greenline backend.
type Shop struct {
	ID         string `json:"id"`
	MerchantID int64  `json:"merchantId"`
	Domain     string `json:"domain"`
	Currency   string `json:"currency"`
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// Client speaks the Greenline GraphQL API. It implements catalog.Store and
// orders.Store.
type Client struct {
	config     *Config
	httpClient *http.Client
}

var (
	_ catalog.Store = (*Client)(nil)
	_ orders.Store  = (*Client)(nil)
)

// NewClient creates a new Greenline API client.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// FindShop looks up a shop registration by domain.
func (c *Client) FindShop(ctx context.Context, domain string) (*Shop, error) {
	var resp struct {
		Data struct {
			FindShop *Shop `json:"findShop"`
		} `json:"data"`
		Errors []graphqlError `json:"errors,omitempty"`
	}
	if err := c.query(ctx, findShopQuery, map[string]any{"domain": domain}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrStoreUnavailable, resp.Errors[0].Message)
	}
	if resp.Data.FindShop == nil {
		return nil, fmt.Errorf("%w: %s", ErrShopNotFound, domain)
	}
	return resp.Data.FindShop, nil
}

// FindItemsByShopifyIDs returns the internal items linked to any of the given
// remote product ids.
func (c *Client) FindItemsByShopifyIDs(ctx context.Context, ids []string) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var resp struct {
		Data struct {
			Items []catalog.Item `json:"findItemsWithShopifyId"`
		} `json:"data"`
		Errors []graphqlError `json:"errors,omitempty"`
	}
	if err := c.query(ctx, findItemsQuery, map[string]any{"shopifyIds": ids}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrStoreUnavailable, resp.Errors[0].Message)
	}
	return resp.Data.Items, nil
}

// SyncProducts applies one reconciliation result for the shop.
func (c *Client) SyncProducts(ctx context.Context, shop string, result *catalog.Result) (*catalog.SyncReceipt, error) {
	var resp struct {
		Data struct {
			Receipt *catalog.SyncReceipt `json:"syncShopifyProducts"`
		} `json:"data"`
		Errors []graphqlError `json:"errors,omitempty"`
	}
	variables := map[string]any{"shop": shop, "input": result}
	if err := c.query(ctx, syncProductsMutation, variables, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrStoreUnavailable, resp.Errors[0].Message)
	}
	if resp.Data.Receipt == nil {
		return nil, fmt.Errorf("%w: empty sync response", catalog.ErrStoreUnavailable)
	}
	return resp.Data.Receipt, nil
}

// FindSyncedOrders returns which of the given order ids Greenline holds.
func (c *Client) FindSyncedOrders(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var resp struct {
		Data struct {
			Orders []struct {
				ShopifyID string `json:"shopifyId"`
			} `json:"findShopifyOrders"`
		} `json:"data"`
		Errors []graphqlError `json:"errors,omitempty"`
	}
	if err := c.query(ctx, findOrdersQuery, map[string]any{"shopifyIds": ids}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrStoreUnavailable, resp.Errors[0].Message)
	}
	synced := make([]string, 0, len(resp.Data.Orders))
	for _, order := range resp.Data.Orders {
		synced = append(synced, order.ShopifyID)
	}
	return synced, nil
}

// CreateOrders pushes classified orders into Greenline.
func (c *Client) CreateOrders(ctx context.Context, shop string, records []*orders.Order) (*orders.SyncReceipt, error) {
	var resp struct {
		Data struct {
			Receipt *orders.SyncReceipt `json:"createShopifyOrders"`
		} `json:"data"`
		Errors []graphqlError `json:"errors,omitempty"`
	}
	variables := map[string]any{"shop": shop, "orders": records}
	if err := c.query(ctx, createOrdersMutation, variables, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrStoreUnavailable, resp.Errors[0].Message)
	}
	if resp.Data.Receipt == nil {
		return nil, fmt.Errorf("%w: empty create response", catalog.ErrStoreUnavailable)
	}
	return resp.Data.Receipt, nil
}

// query posts one GraphQL document and decodes the response into out.
func (c *Client) query(ctx context.Context, document string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: document, Variables: variables})
	if err != nil {
		return fmt.Errorf("greenline: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("greenline: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("greenline: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: HTTP %d", catalog.ErrStoreUnavailable, resp.StatusCode)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("greenline: failed to parse response: %w", err)
	}
	return nil
}
