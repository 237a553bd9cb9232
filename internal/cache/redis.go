// internal/cache/redis.go
package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"nlp-service/internal/common/config"
)

// RedisStore implements Store over go-redis.
type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore creates a store and verifies the connection.
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{Client: rdb}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests to point
// the store at miniredis or a mock.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) Available() bool {
	return true
}

// Get retrieves a value by key
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	return s.Client.Get(ctx, key).Result()
}

// Set sets a value with expiration
func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return s.Client.Set(ctx, key, value, ttl).Err()
}

// Flush clears the current database
func (s *RedisStore) Flush(ctx context.Context) error {
	return s.Client.FlushDB(ctx).Err()
}

// Status reports connection and key counts for the introspection route.
func (s *RedisStore) Status(ctx context.Context) (*Status, error) {
	clients, err := s.Client.Info(ctx, "clients").Result()
	if err != nil {
		return nil, fmt.Errorf("redis info failed: %w", err)
	}
	memory, err := s.Client.Info(ctx, "memory").Result()
	if err != nil {
		return nil, fmt.Errorf("redis info failed: %w", err)
	}
	keys, err := s.Client.DBSize(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("redis dbsize failed: %w", err)
	}

	return &Status{
		ConnectedClients: parseInfoInt(clients, "connected_clients"),
		UsedMemory:       parseInfoField(memory, "used_memory_human", "0B"),
		TotalKeys:        keys,
	}, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	if s.Client != nil {
		return s.Client.Close()
	}
	return nil
}

// parseInfoField pulls one value out of an INFO section response. Lines are
// "field:value" terminated by CRLF.
func parseInfoField(info, field, fallback string) string {
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, field+":") {
			return strings.TrimPrefix(line, field+":")
		}
	}
	return fallback
}

func parseInfoInt(info, field string) int {
	v, err := strconv.Atoi(parseInfoField(info, field, "0"))
	if err != nil {
		return 0
	}
	return v
}
