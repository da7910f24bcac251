package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Joining invalidation errors
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves like a cache miss.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// SummaryCacheKey is the cache key of an account's dashboard summary
func SummaryCacheKey(accountNumber string) string {
	return "summary:account:" + accountNumber
}

// DevicesCacheKey is the cache key of an account's device list
func DevicesCacheKey(accountNumber string) string {
	return "devices:account:" + accountNumber
}

// CacheVersionKey holds a counter bumped on every invalidation of an account
func CacheVersionKey(accountNumber string) string {
	return "cachever:account:" + accountNumber
}

// CacheVersion reads the account's cache version, "0" when never invalidated.
// Read it before loading the data to be cached and hand it to SetCacheIfUnchanged.
func CacheVersion(ctx context.Context, rdb *redis.Client, accountNumber string) string {
	if rdb == nil {
		return "0"
	}
	ver, err := rdb.Get(ctx, CacheVersionKey(accountNumber)).Result()
	if err != nil {
		return "0" // Missing key or Redis error
	}
	return ver
}

// setIfVersion writes KEYS[2] only while KEYS[1] still holds ARGV[1]
var setIfVersion = redis.NewScript(`
if (redis.call('GET', KEYS[1]) or '0') ~= ARGV[1] then
  return 0
end
if tonumber(ARGV[3]) > 0 then
  return redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
end
return redis.call('SET', KEYS[2], ARGV[2])
`)

// SetCacheIfUnchanged caches value unless the account was invalidated since
// version was read. It reports whether the value was stored.
func SetCacheIfUnchanged(ctx context.Context, rdb *redis.Client, accountNumber, version, key string, value any, ttl time.Duration) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return false, err
	}
	res, err := setIfVersion.Run(ctx, rdb, []string{CacheVersionKey(accountNumber), key}, version, b, ttl.Milliseconds()).Result()
	if err != nil {
		return false, err
	}
	return res == "OK", nil // 0 means a newer version exists
}

// InvalidateAccount bumps the account's cache version, so that in-flight
// reads do not repopulate stale data, and drops every cached view of it
func InvalidateAccount(ctx context.Context, rdb *redis.Client, accountNumber string) error {
	if rdb == nil {
		return nil
	}
	incrErr := rdb.Incr(ctx, CacheVersionKey(accountNumber)).Err() // Fence off in-flight readers
	delErr := DeleteCache(ctx, rdb, SummaryCacheKey(accountNumber), DevicesCacheKey(accountNumber))
	return errors.Join(incrErr, delErr)
}
