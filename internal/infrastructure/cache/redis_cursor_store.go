package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/greenline/shopify-bridge/internal/domain/orders"
	"github.com/redis/go-redis/v9"
)

const (
	cursorKeyPrefix = "orders:cursor:"

	// cursorTTL is how long a remembered page position stays valid. Stale
	// cursors eventually stop matching the remote listing anyway.
	cursorTTL = 24 * time.Hour
)

// RedisCursorStore implements orders.CursorStore using Redis. This is
// suitable for distributed deployments where multiple instances serve the
// same shops.
type RedisCursorStore struct {
	client    *redis.Client
	keyPrefix string
}

var _ orders.CursorStore = (*RedisCursorStore)(nil)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCursorStore creates a new Redis-backed cursor store
func NewRedisCursorStore(cfg RedisConfig) (*RedisCursorStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCursorStore{
		client:    client,
		keyPrefix: cursorKeyPrefix,
	}, nil
}

// NewRedisCursorStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisCursorStoreWithClient(client *redis.Client, keyPrefix string) *RedisCursorStore {
	if keyPrefix == "" {
		keyPrefix = cursorKeyPrefix
	}
	return &RedisCursorStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// SaveCursor remembers the cursor and direction of the page last served to
// the shop.
func (s *RedisCursorStore) SaveCursor(ctx context.Context, shop string, cursor string, direction orders.FetchDirection) error {
	key := s.keyPrefix + shop
	value := string(direction) + "|" + cursor
	if err := s.client.Set(ctx, key, value, cursorTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cursor: %w", err)
	}
	return nil
}

// LoadCursor returns the remembered position, or the first forward page when
// none is set.
func (s *RedisCursorStore) LoadCursor(ctx context.Context, shop string) (string, orders.FetchDirection, error) {
	key := s.keyPrefix + shop
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", orders.FetchForward, nil
	}
	if err != nil {
		return "", orders.FetchForward, fmt.Errorf("failed to load cursor: %w", err)
	}
	return decodeCursor(value)
}

// Close closes the Redis client
func (s *RedisCursorStore) Close() error {
	return s.client.Close()
}

func decodeCursor(value string) (string, orders.FetchDirection, error) {
	for i := 0; i < len(value); i++ {
		if value[i] == '|' {
			direction := orders.FetchDirection(value[:i])
			if !direction.IsValid() {
				return "", orders.FetchForward, fmt.Errorf("cache: malformed cursor entry %q", value)
			}
			return value[i+1:], direction, nil
		}
	}
	return "", orders.FetchForward, fmt.Errorf("cache: malformed cursor entry %q", value)
}
