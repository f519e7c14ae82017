package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenline/shopify-bridge/internal/interfaces/http/dto"
)

// BodyLimit rejects request bodies larger than maxBytes. The sync API only
// ever receives small JSON commands, so a tight cap is safe.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
