package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"github.com/greenline/shopify-bridge/internal/domain/orders"
	"github.com/greenline/shopify-bridge/internal/infrastructure/greenline"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/dto"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// Success sends a success response.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with an explicit status code.
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// HandleError maps a service error onto the matching error code and status.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code := dto.ErrCodeInternal
	switch {
	case errors.Is(err, catalog.ErrCheckpointNotFound):
		code = dto.ErrCodeNotFound
	case errors.Is(err, catalog.ErrSyncInProgress):
		code = dto.ErrCodeSyncInProgress
	case errors.Is(err, catalog.ErrSyncComplete):
		code = dto.ErrCodeSyncComplete
	case errors.Is(err, catalog.ErrSyncRejected), errors.Is(err, orders.ErrSyncRejected):
		code = dto.ErrCodeSyncRejected
	case errors.Is(err, catalog.ErrSourceUnavailable):
		code = dto.ErrCodeSourceUnavailable
	case errors.Is(err, catalog.ErrStoreUnavailable):
		code = dto.ErrCodeStoreUnavailable
	case errors.Is(err, greenline.ErrShopNotFound):
		code = dto.ErrCodeShopUnknown
	}

	message := err.Error()
	if code == dto.ErrCodeInternal {
		// Internal details stay in the logs.
		message = "An unexpected error occurred"
	}
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}
