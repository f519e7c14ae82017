package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"github.com/greenline/shopify-bridge/internal/domain/orders"
)

// maxResponseSize is the maximum allowed response size from the Admin API (10MB)
const maxResponseSize = 10 * 1024 * 1024

const productsQuery = `
query Products($pageSize: Int!, $cursor: String) {
  products(first: $pageSize, after: $cursor) {
    edges {
      node {
        id
        title
        handle
        description
        images(first: 1) {
          edges { node { url } }
        }
        variants(first: 100) {
          edges {
            node {
              id
              title
              displayName
              sku
              price
              availableForSale
              image { url }
              selectedOptions { name value }
            }
          }
        }
      }
    }
    pageInfo { hasNextPage endCursor }
  }
}`

const ordersForwardQuery = `
query Orders($pageSize: Int!, $cursor: String) {
  orders(first: $pageSize, after: $cursor, sortKey: CREATED_AT, reverse: true) {
    edges { node { ...OrderFields } }
    pageInfo { hasNextPage hasPreviousPage startCursor endCursor }
  }
}` + orderFieldsFragment

const ordersBackwardQuery = `
query Orders($pageSize: Int!, $cursor: String) {
  orders(last: $pageSize, before: $cursor, sortKey: CREATED_AT, reverse: true) {
    edges { node { ...OrderFields } }
    pageInfo { hasNextPage hasPreviousPage startCursor endCursor }
  }
}` + orderFieldsFragment

const orderFieldsFragment = `
fragment OrderFields on Order {
  id
  name
  currencyCode
  createdAt
  returnStatus
  paymentGatewayNames
  fullyPaid
  totalPriceSet { shopMoney { amount currencyCode } }
  totalShippingPriceSet { shopMoney { amount currencyCode } }
  customer { firstName lastName email phone verifiedEmail }
  shippingAddress {
    address1 address2 name phone company city country province provinceCode
  }
  lineItems(first: 50) {
    edges {
      node {
        id
        sku
        name
        title
        quantity
        variant { id }
        originalTotalSet { shopMoney { amount } }
        discountedTotalSet { shopMoney { amount } }
      }
    }
  }
  returns(first: 10) {
    edges {
      node {
        id
        name
        status
        exchangeLineItems(first: 50) {
          edges {
            node {
              id
              lineItem {
                id
                sku
                name
                title
                quantity
                variant { id }
                originalTotalSet { shopMoney { amount } }
                discountedTotalSet { shopMoney { amount } }
              }
            }
          }
        }
      }
    }
  }
}`

// Client speaks the Shopify Admin GraphQL API. It implements catalog.Source
// and orders.Source.
type Client struct {
	config     *Config
	httpClient *http.Client

	// shopTokens stores per-shop access tokens
	shopTokens map[string]string
	mu         sync.RWMutex // Protects shopTokens map
}

var (
	_ catalog.Source = (*Client)(nil)
	_ orders.Source  = (*Client)(nil)
)

// NewClient creates a new Shopify Admin API client.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		shopTokens: make(map[string]string),
	}, nil
}

// SetShopToken registers an access token for a specific shop.
func (c *Client) SetShopToken(shop, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shopTokens[shop] = token
}

func (c *Client) tokenFor(shop string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if token, ok := c.shopTokens[shop]; ok {
		return token
	}
	return c.config.AccessToken
}

func (c *Client) endpoint(shop string) string {
	if c.config.APIBaseURL != "" {
		return c.config.APIBaseURL
	}
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, c.config.APIVersion)
}

// FetchProductsPage fetches one page of products for the shop. An empty
// cursor requests the first page.
func (c *Client) FetchProductsPage(ctx context.Context, shop string, cursor string) (*catalog.Page, error) {
	variables := map[string]any{"pageSize": c.config.PageSize}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var resp productsResponse
	if err := c.query(ctx, shop, productsQuery, variables, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrSourceUnavailable, resp.Errors[0].Message)
	}

	page := &catalog.Page{
		HasNextPage: resp.Data.Products.PageInfo.HasNextPage,
		EndCursor:   resp.Data.Products.PageInfo.EndCursor,
	}
	for _, edge := range resp.Data.Products.Edges {
		page.Products = append(page.Products, edge.Node.toDomain())
	}
	return page, nil
}

// FetchOrdersPage fetches one page of orders for the shop. The direction
// selects forward (after-cursor) or backward (before-cursor) pagination.
func (c *Client) FetchOrdersPage(ctx context.Context, shop string, cursor string, direction orders.FetchDirection) (*orders.Page, error) {
	query := ordersForwardQuery
	if direction == orders.FetchBackward {
		query = ordersBackwardQuery
	}
	variables := map[string]any{"pageSize": c.config.PageSize}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var resp ordersResponse
	if err := c.query(ctx, shop, query, variables, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrSourceUnavailable, resp.Errors[0].Message)
	}

	page := &orders.Page{
		PageInfo: resp.Data.Orders.PageInfo.toDomain(),
	}
	for _, edge := range resp.Data.Orders.Edges {
		page.Orders = append(page.Orders, edge.Node.toDomain())
	}
	return page, nil
}

// query posts one GraphQL document and decodes the response into out.
func (c *Client) query(ctx context.Context, shop string, document string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: document, Variables: variables})
	if err != nil {
		return fmt.Errorf("shopify: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(shop), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.tokenFor(shop))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("shopify: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: HTTP %d", catalog.ErrSourceUnavailable, resp.StatusCode)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("shopify: failed to parse response: %w", err)
	}
	return nil
}
