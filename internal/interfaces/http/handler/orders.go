package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	syncapp "github.com/greenline/shopify-bridge/internal/application/sync"
	"github.com/greenline/shopify-bridge/internal/domain/orders"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/middleware"
)

// OrderHandler exposes the order browsing and sync endpoints.
type OrderHandler struct {
	BaseHandler
	dispatcher *syncapp.Dispatcher
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(dispatcher *syncapp.Dispatcher) *OrderHandler {
	return &OrderHandler{dispatcher: dispatcher}
}

// RegisterRoutes registers the order routes on the given group.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/orders")
	group.POST("/fetch", h.Fetch)
	group.POST("/refresh", h.Refresh)
	group.POST("/sync", h.Sync)
}

// FetchOrdersRequest selects the page to serve. Both fields are optional;
// an empty body serves the first page.
type FetchOrdersRequest struct {
	Cursor    string `json:"cursor"`
	Direction string `json:"direction" binding:"omitempty,oneof=forward backward"`
}

// Fetch serves one page of classified orders and remembers its position.
func (h *OrderHandler) Fetch(c *gin.Context) {
	var req FetchOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.dispatcher.Execute(c.Request.Context(), syncapp.FetchOrdersCommand{
		Shop:      middleware.GetShopDomain(c),
		Cursor:    req.Cursor,
		Direction: orders.FetchDirection(req.Direction),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh replays the page last served to the shop.
func (h *OrderHandler) Refresh(c *gin.Context) {
	result, err := h.dispatcher.Execute(c.Request.Context(), syncapp.RefreshOrdersCommand{
		Shop: middleware.GetShopDomain(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Sync pushes the unsynced records of the last served page into the internal
// database.
func (h *OrderHandler) Sync(c *gin.Context) {
	result, err := h.dispatcher.Execute(c.Request.Context(), syncapp.SyncOrdersCommand{
		Shop: middleware.GetShopDomain(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
