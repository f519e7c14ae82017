package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
)

func TestCatalogFetch_StoresSnapshot(t *testing.T) {
	f := defaultFixtures()
	f.catalogSource.pages = []*catalog.Page{remoteCatalogPage(3)}

	engine := newTestRouter(f)
	w := doRequest(engine, http.MethodPost, "/api/v1/catalog/fetch", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := dataField(t, resp)
	assert.Equal(t, float64(3), data["product_count"])
	assert.Equal(t, float64(1), data["page_count"])

	cp, err := f.checkpoints.Load(context.Background(), testShop)
	require.NoError(t, err)
	assert.Len(t, cp.Data, 3)
}

func TestCatalogFetch_RequiresShopHeader(t *testing.T) {
	engine := newTestRouter(defaultFixtures())

	req := doRequestWithoutShop(engine, http.MethodPost, "/api/v1/catalog/fetch")

	assert.Equal(t, http.StatusBadRequest, req.Code)
}

func TestCatalogFetch_SourceDown(t *testing.T) {
	f := defaultFixtures()
	f.catalogSource.err = catalog.ErrSourceUnavailable

	engine := newTestRouter(f)
	w := doRequest(engine, http.MethodPost, "/api/v1/catalog/fetch", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_SOURCE_UNAVAILABLE", resp.Error.Code)
}

func TestCatalogSync_AppliesNextWindow(t *testing.T) {
	f := defaultFixtures()
	f.catalogSource.pages = []*catalog.Page{remoteCatalogPage(3)}

	engine := newTestRouter(f)
	require.Equal(t, http.StatusOK, doRequest(engine, http.MethodPost, "/api/v1/catalog/fetch", "").Code)

	w := doRequest(engine, http.MethodPost, "/api/v1/catalog/sync", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, decodeResponse(t, w))
	assert.Equal(t, string(catalog.SyncStatusApplied), data["status"])
	assert.Equal(t, float64(0), data["window_start"])
	assert.Equal(t, float64(3), data["window_end"])
	assert.True(t, data["complete"].(bool))
	assert.Equal(t, 1, f.catalogStore.syncCalls)
}

func TestCatalogSync_WithoutSnapshot(t *testing.T) {
	engine := newTestRouter(defaultFixtures())

	w := doRequest(engine, http.MethodPost, "/api/v1/catalog/sync", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_NOT_FOUND", resp.Error.Code)
}

func TestCatalogSync_ExhaustedSnapshot(t *testing.T) {
	f := defaultFixtures()
	f.catalogSource.pages = []*catalog.Page{remoteCatalogPage(2)}

	engine := newTestRouter(f)
	require.Equal(t, http.StatusOK, doRequest(engine, http.MethodPost, "/api/v1/catalog/fetch", "").Code)
	require.Equal(t, http.StatusOK, doRequest(engine, http.MethodPost, "/api/v1/catalog/sync", "").Code)

	w := doRequest(engine, http.MethodPost, "/api/v1/catalog/sync", "")

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_SYNC_COMPLETE", resp.Error.Code)
}

func TestCatalogStatus_NoSnapshot(t *testing.T) {
	engine := newTestRouter(defaultFixtures())

	w := doRequest(engine, http.MethodGet, "/api/v1/catalog/status", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, decodeResponse(t, w))
	assert.False(t, data["exists"].(bool))
}

func TestCatalogStatus_ReportsProgress(t *testing.T) {
	f := defaultFixtures()
	f.catalogSource.pages = []*catalog.Page{remoteCatalogPage(3)}

	engine := newTestRouter(f)
	require.Equal(t, http.StatusOK, doRequest(engine, http.MethodPost, "/api/v1/catalog/fetch", "").Code)
	require.Equal(t, http.StatusOK, doRequest(engine, http.MethodPost, "/api/v1/catalog/sync", "").Code)

	w := doRequest(engine, http.MethodGet, "/api/v1/catalog/status", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, decodeResponse(t, w))
	assert.True(t, data["exists"].(bool))
	assert.False(t, data["syncing"].(bool))
	assert.Equal(t, float64(3), data["last_synced_index"])
	assert.Equal(t, float64(3), data["product_count"])
	assert.True(t, data["complete"].(bool))
	assert.NotEmpty(t, data["recent_runs"])
}
