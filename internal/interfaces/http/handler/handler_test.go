package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	syncapp "github.com/greenline/shopify-bridge/internal/application/sync"
	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"github.com/greenline/shopify-bridge/internal/domain/orders"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/dto"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/middleware"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/router"
)

const testShop = "demo.myshopify.com"

func init() {
	gin.SetMode(gin.TestMode)
}

// ---------------------------------------------------------------------------
// Port stubs
// ---------------------------------------------------------------------------

type stubCatalogSource struct {
	pages []*catalog.Page
	err   error
	calls int
}

func (s *stubCatalogSource) FetchProductsPage(_ context.Context, _ string, _ string) (*catalog.Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	page := s.pages[s.calls]
	s.calls++
	return page, nil
}

type stubCatalogStore struct {
	items     []catalog.Item
	receipt   *catalog.SyncReceipt
	syncCalls int
}

func (s *stubCatalogStore) FindItemsByShopifyIDs(_ context.Context, _ []string) ([]catalog.Item, error) {
	return s.items, nil
}

func (s *stubCatalogStore) SyncProducts(_ context.Context, _ string, _ *catalog.Result) (*catalog.SyncReceipt, error) {
	s.syncCalls++
	if s.receipt != nil {
		return s.receipt, nil
	}
	return &catalog.SyncReceipt{Success: true}, nil
}

type stubCheckpointRepo struct {
	mu          sync.Mutex
	checkpoints map[string]*catalog.Checkpoint
}

func newStubCheckpointRepo() *stubCheckpointRepo {
	return &stubCheckpointRepo{checkpoints: make(map[string]*catalog.Checkpoint)}
}

func (r *stubCheckpointRepo) Load(_ context.Context, shop string) (*catalog.Checkpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp, ok := r.checkpoints[shop]
	if !ok {
		return nil, catalog.ErrCheckpointNotFound
	}
	clone := *cp
	return &clone, nil
}

func (r *stubCheckpointRepo) Save(_ context.Context, cp *catalog.Checkpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *cp
	r.checkpoints[cp.Shop] = &clone
	return nil
}

func (r *stubCheckpointRepo) Clear(_ context.Context, shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkpoints, shop)
	return nil
}

type stubSyncRunRepo struct {
	mu   sync.Mutex
	runs []catalog.SyncRun
}

func (r *stubSyncRunRepo) Save(_ context.Context, run *catalog.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.runs {
		if r.runs[i].ID == run.ID {
			r.runs[i] = *run
			return nil
		}
	}
	r.runs = append(r.runs, *run)
	return nil
}

func (r *stubSyncRunRepo) FindRecent(_ context.Context, shop string, limit int) ([]catalog.SyncRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var recent []catalog.SyncRun
	for i := len(r.runs) - 1; i >= 0 && len(recent) < limit; i-- {
		if r.runs[i].Shop == shop {
			recent = append(recent, r.runs[i])
		}
	}
	return recent, nil
}

type stubOrderSource struct {
	page *orders.Page
	err  error
}

func (s *stubOrderSource) FetchOrdersPage(_ context.Context, _ string, _ string, _ orders.FetchDirection) (*orders.Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

type stubOrderStore struct {
	synced  []string
	receipt *orders.SyncReceipt
}

func (s *stubOrderStore) FindSyncedOrders(_ context.Context, _ []string) ([]string, error) {
	return s.synced, nil
}

func (s *stubOrderStore) CreateOrders(_ context.Context, _ string, _ []*orders.Order) (*orders.SyncReceipt, error) {
	if s.receipt != nil {
		return s.receipt, nil
	}
	return &orders.SyncReceipt{Success: true}, nil
}

type stubCursorStore struct {
	mu      sync.Mutex
	cursors map[string]string
}

func newStubCursorStore() *stubCursorStore {
	return &stubCursorStore{cursors: make(map[string]string)}
}

func (s *stubCursorStore) SaveCursor(_ context.Context, shop string, cursor string, direction orders.FetchDirection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[shop] = string(direction) + "|" + cursor
	return nil
}

func (s *stubCursorStore) LoadCursor(_ context.Context, shop string) (string, orders.FetchDirection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cursors[shop]
	if !ok {
		return "", orders.FetchForward, nil
	}
	direction, cursor, _ := strings.Cut(v, "|")
	return cursor, orders.FetchDirection(direction), nil
}

// ---------------------------------------------------------------------------
// Test harness
// ---------------------------------------------------------------------------

type fixtures struct {
	catalogSource *stubCatalogSource
	catalogStore  *stubCatalogStore
	checkpoints   *stubCheckpointRepo
	runs          *stubSyncRunRepo

	orderSource *stubOrderSource
	orderStore  *stubOrderStore
	cursors     *stubCursorStore
}

func newTestRouter(f *fixtures) *gin.Engine {
	catalogService := syncapp.NewCatalogService(
		f.catalogSource, f.catalogStore, f.checkpoints, f.runs,
		zap.NewNop(), syncapp.Options{},
	)
	orderService := syncapp.NewOrderService(
		f.orderSource, f.orderStore, f.cursors, zap.NewNop(),
	)
	dispatcher := syncapp.NewDispatcher(catalogService, orderService)

	engine := gin.New()
	r := router.NewRouter(engine)
	r.Use(middleware.ShopDomain(middleware.ShopDomainConfig{}))
	r.Register(
		NewCatalogHandler(dispatcher),
		NewOrderHandler(dispatcher),
		NewSystemHandler(),
	)
	r.Setup()
	return engine
}

func defaultFixtures() *fixtures {
	return &fixtures{
		catalogSource: &stubCatalogSource{},
		catalogStore:  &stubCatalogStore{},
		checkpoints:   newStubCheckpointRepo(),
		runs:          &stubSyncRunRepo{},
		orderSource:   &stubOrderSource{page: &orders.Page{}},
		orderStore:    &stubOrderStore{},
		cursors:       newStubCursorStore(),
	}
}

func remoteCatalogPage(n int) *catalog.Page {
	products := make([]*catalog.Product, 0, n)
	for i := 0; i < n; i++ {
		id := "gid://shopify/Product/" + string(rune('a'+i))
		products = append(products, &catalog.Product{
			ID:     id,
			Title:  "Product " + id,
			Images: []catalog.Image{{URL: "https://cdn.example.com/p.png"}},
			Variants: []*catalog.Variant{{
				ID:          id + "/v",
				SKU:         "SKU-" + id,
				Title:       "Default Title",
				DisplayName: "Product " + id + " - Default Title",
				Price:       "10.00",
				SelectedOptions: []catalog.SelectedOption{
					{Name: "Title", Value: "Default Title"},
				},
			}},
		})
	}
	return &catalog.Page{Products: products}
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-Shop-Domain", testShop)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doRequestWithoutShop(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataField(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return data
}
