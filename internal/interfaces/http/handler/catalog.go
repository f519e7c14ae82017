package handler

import (
	"github.com/gin-gonic/gin"

	syncapp "github.com/greenline/shopify-bridge/internal/application/sync"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/middleware"
)

// CatalogHandler exposes the catalog reconciliation endpoints.
type CatalogHandler struct {
	BaseHandler
	dispatcher *syncapp.Dispatcher
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(dispatcher *syncapp.Dispatcher) *CatalogHandler {
	return &CatalogHandler{dispatcher: dispatcher}
}

// RegisterRoutes registers the catalog routes on the given group.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/catalog")
	group.POST("/fetch", h.Fetch)
	group.POST("/sync", h.SyncWindow)
	group.GET("/status", h.Status)
}

// Fetch pulls the full remote catalog, reconciles it against the internal
// database and stores the snapshot for chunked syncing.
func (h *CatalogHandler) Fetch(c *gin.Context) {
	result, err := h.dispatcher.Execute(c.Request.Context(), syncapp.FetchCatalogCommand{
		Shop: middleware.GetShopDomain(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SyncWindow applies the next batch of the stored snapshot.
func (h *CatalogHandler) SyncWindow(c *gin.Context) {
	result, err := h.dispatcher.Execute(c.Request.Context(), syncapp.SyncWindowCommand{
		Shop: middleware.GetShopDomain(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Status reports the progress of the stored snapshot.
func (h *CatalogHandler) Status(c *gin.Context) {
	result, err := h.dispatcher.Execute(c.Request.Context(), syncapp.CatalogStatusCommand{
		Shop: middleware.GetShopDomain(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
