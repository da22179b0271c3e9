package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if opt, err := redis.ParseURL(addr); err == nil {
		log.Println("Connecting to Redis via URL...")
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// IncrWindow increments a fixed-window counter and returns the new count
// together with the time left until the window resets. The expiry is only
// set when the key is created, so every hit within the window shares the
// same reset time.
func (rc *RedisClient) IncrWindow(key string, window time.Duration) (int64, time.Duration, error) {
	pipe := rc.client.TxPipeline()
	incr := pipe.Incr(rc.ctx, key)
	pipe.ExpireNX(rc.ctx, key, window)
	ttl := pipe.TTL(rc.ctx, key)
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return 0, 0, fmt.Errorf("error incrementing window counter %s: %v", key, err)
	}
	return incr.Val(), ttl.Val(), nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
