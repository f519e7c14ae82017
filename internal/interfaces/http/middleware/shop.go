package middleware

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenline/shopify-bridge/internal/infrastructure/greenline"
	"github.com/greenline/shopify-bridge/internal/infrastructure/logger"
	"github.com/greenline/shopify-bridge/internal/interfaces/http/dto"
)

// ShopDomainKey is the gin context key for the verified shop domain.
const ShopDomainKey = "shop_domain"

// ShopKey is the gin context key for the resolved shop record, set only when
// a verifier is configured.
const ShopKey = "shop"

var shopDomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)

// ShopVerifier resolves a shop domain against the internal database.
type ShopVerifier interface {
	FindShop(ctx context.Context, domain string) (*greenline.Shop, error)
}

// ShopDomainConfig configures the ShopDomain middleware.
type ShopDomainConfig struct {
	// Verifier, when set, rejects requests for shops the internal database
	// does not know about and stashes the resolved record under ShopKey.
	Verifier ShopVerifier
	Logger   *zap.Logger
}

// ShopDomain requires a well-formed X-Shop-Domain header on every request and
// makes the domain available to handlers and the request-scoped logger.
func ShopDomain(cfg ShopDomainConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		domain := strings.ToLower(strings.TrimSpace(c.GetHeader("X-Shop-Domain")))
		if domain == "" {
			abortShop(c, dto.ErrCodeBadRequest, "X-Shop-Domain header is required")
			return
		}
		if !shopDomainPattern.MatchString(domain) {
			abortShop(c, dto.ErrCodeBadRequest, "X-Shop-Domain must be a *.myshopify.com domain")
			return
		}

		if cfg.Verifier != nil {
			shop, err := cfg.Verifier.FindShop(c.Request.Context(), domain)
			if err != nil {
				if errors.Is(err, greenline.ErrShopNotFound) {
					abortShop(c, dto.ErrCodeShopUnknown, "shop is not registered")
					return
				}
				log.Error("shop verification failed",
					zap.String("shop", domain),
					zap.Error(err),
				)
				abortShop(c, dto.ErrCodeStoreUnavailable, "internal database is unavailable")
				return
			}
			c.Set(ShopKey, shop)
		}

		c.Set(ShopDomainKey, domain)
		ctx, _ := logger.WithShopDomain(c.Request.Context(), logger.FromContext(c.Request.Context()), domain)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetShopDomain returns the shop domain set by ShopDomain, or "".
func GetShopDomain(c *gin.Context) string {
	return c.GetString(ShopDomainKey)
}

// GetShop returns the resolved shop record, or nil when no verifier ran.
func GetShop(c *gin.Context) *greenline.Shop {
	if v, ok := c.Get(ShopKey); ok {
		if shop, ok := v.(*greenline.Shop); ok {
			return shop
		}
	}
	return nil
}

func abortShop(c *gin.Context, code, message string) {
	status := dto.GetHTTPStatus(code)
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
