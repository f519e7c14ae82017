package shopify

import "errors"

// DefaultAPIVersion is the Admin GraphQL API version the client speaks.
const DefaultAPIVersion = "2024-10"

// Errors for Shopify configuration
var (
	ErrConfigMissingAccessToken = errors.New("shopify: access token is required")
	ErrConfigInvalidPageSize    = errors.New("shopify: page size must be positive")
)

// Config holds configuration for the Shopify Admin GraphQL API.
type Config struct {
	// AccessToken is the Admin API access token used when no per-shop
	// token is registered.
	AccessToken string
	// APIVersion is the Admin API version segment of the endpoint URL.
	APIVersion string
	// APIBaseURL overrides the per-shop endpoint when set. Used for
	// testing against a local server.
	APIBaseURL string
	// PageSize is how many products or orders one page request asks for.
	PageSize int
	// TimeoutSeconds is the HTTP request timeout.
	TimeoutSeconds int
}

// NewConfig creates a new Shopify configuration with defaults.
func NewConfig(accessToken string) *Config {
	return &Config{
		AccessToken:    accessToken,
		APIVersion:     DefaultAPIVersion,
		PageSize:       25,
		TimeoutSeconds: 30,
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	if c.PageSize < 0 {
		return ErrConfigInvalidPageSize
	}
	if c.PageSize == 0 {
		c.PageSize = 25
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
