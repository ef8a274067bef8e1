package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"
	"time" // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// CacheTTL is the lifetime of cached responses.
const CacheTTL = 60 * time.Second

// ListingKey is the cache key for a single listing.
func ListingKey(id uint) string {
	return "listing:" + strconv.FormatUint(uint64(id), 10)
}

// LocationsKey is the cache key for the distinct cities/states response.
const LocationsKey = "listings:locations"

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client reports a miss so callers don't need their own guard.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
