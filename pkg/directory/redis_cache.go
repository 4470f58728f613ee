package directory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightline/portald/pkg/logging"
)

const cacheKeyPrefix = "portald:staff:"

// notFoundMarker is stored for misses so repeated lookups of unprovisioned
// accounts don't hit the warehouse on every request.
const notFoundMarker = "__not_found__"

// RedisCache is a shared read-through cache in front of a Source. Unlike the
// in-process Repository cache it is shared across portal instances. Cache
// failures fall through to the underlying source; they never fail a lookup.
type RedisCache struct {
	source Source
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps source with a Redis-backed cache using the given TTL
func NewRedisCache(source Source, client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{source: source, client: client, ttl: ttl}
}

// LoadStaff implements Source
func (c *RedisCache) LoadStaff(ctx context.Context, email string) (*StaffRecord, error) {
	key := cacheKeyPrefix + email

	payload, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if payload == notFoundMarker {
			return nil, ErrStaffNotFound
		}
		var record StaffRecord
		if jsonErr := json.Unmarshal([]byte(payload), &record); jsonErr == nil {
			return &record, nil
		}
		// Corrupt entry; fall through and repopulate
	case !errors.Is(err, redis.Nil):
		logging.App.Warnw("staff cache read failed", "email", email, "error", err)
	}

	record, err := c.source.LoadStaff(ctx, email)
	if errors.Is(err, ErrStaffNotFound) {
		c.store(ctx, key, notFoundMarker)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(record); jsonErr == nil {
		c.store(ctx, key, string(payload))
	}
	return record, nil
}

func (c *RedisCache) store(ctx context.Context, key, payload string) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logging.App.Warnw("staff cache write failed", "key", key, "error", err)
	}
}
