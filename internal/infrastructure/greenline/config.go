package greenline

import "errors"

// Errors for Greenline configuration
var (
	ErrConfigMissingEndpoint = errors.New("greenline: endpoint is required")
	ErrConfigMissingAPIKey   = errors.New("greenline: api key is required")
)

// Config holds configuration for the Greenline GraphQL API.
type Config struct {
	// Endpoint is the GraphQL endpoint URL.
	Endpoint string
	// APIKey authenticates the bridge against the Greenline backend.
	APIKey string
	// TimeoutSeconds is the HTTP request timeout.
	TimeoutSeconds int
}

// NewConfig creates a new Greenline configuration with defaults.
func NewConfig(endpoint, apiKey string) *Config {
	return &Config{
		Endpoint:       endpoint,
		APIKey:         apiKey,
		TimeoutSeconds: 30,
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrConfigMissingEndpoint
	}
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
