package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"BRIDGE_APP_NAME":               os.Getenv("BRIDGE_APP_NAME"),
		"BRIDGE_APP_ENV":                os.Getenv("BRIDGE_APP_ENV"),
		"BRIDGE_APP_PORT":               os.Getenv("BRIDGE_APP_PORT"),
		"BRIDGE_DATABASE_HOST":          os.Getenv("BRIDGE_DATABASE_HOST"),
		"BRIDGE_DATABASE_PASSWORD":      os.Getenv("BRIDGE_DATABASE_PASSWORD"),
		"BRIDGE_DATABASE_SSLMODE":       os.Getenv("BRIDGE_DATABASE_SSLMODE"),
		"BRIDGE_SYNC_WINDOW_SIZE":       os.Getenv("BRIDGE_SYNC_WINDOW_SIZE"),
		"BRIDGE_SYNC_FETCH_RETRY_LIMIT": os.Getenv("BRIDGE_SYNC_FETCH_RETRY_LIMIT"),
		"BRIDGE_SHOPIFY_ACCESS_TOKEN":   os.Getenv("BRIDGE_SHOPIFY_ACCESS_TOKEN"),
		"BRIDGE_GREENLINE_ENDPOINT":     os.Getenv("BRIDGE_GREENLINE_ENDPOINT"),
		"BRIDGE_GREENLINE_API_KEY":      os.Getenv("BRIDGE_GREENLINE_API_KEY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shopify-bridge", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, "shopify_bridge", cfg.Database.DBName)
		assert.Equal(t, 10, cfg.Sync.WindowSize)
		assert.Equal(t, 10, cfg.Sync.FetchRetryLimit)
		assert.Equal(t, 25, cfg.Shopify.PageSize)
		assert.Equal(t, "2024-10", cfg.Shopify.APIVersion)
	})

	t.Run("loads values from environment variables with BRIDGE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_APP_PORT", "9000")
		os.Setenv("BRIDGE_DATABASE_HOST", "db.internal")
		os.Setenv("BRIDGE_SYNC_WINDOW_SIZE", "20")
		os.Setenv("BRIDGE_SHOPIFY_ACCESS_TOKEN", "shpat_test")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 20, cfg.Sync.WindowSize)
		assert.Equal(t, "shpat_test", cfg.Shopify.AccessToken)
	})

	t.Run("production requires credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shopify.access_token")

		os.Setenv("BRIDGE_SHOPIFY_ACCESS_TOKEN", "shpat_test")
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "greenline.endpoint")

		os.Setenv("BRIDGE_GREENLINE_ENDPOINT", "https://api.greenline.example/graphql")
		os.Setenv("BRIDGE_GREENLINE_API_KEY", "key")
		os.Setenv("BRIDGE_DATABASE_PASSWORD", "secret")
		os.Setenv("BRIDGE_DATABASE_SSLMODE", "require")
		_, err = Load()
		assert.NoError(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "bridge",
		Password: "p@ss/word",
		DBName:   "shopify_bridge",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}
