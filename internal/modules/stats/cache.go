// README: Redis-backed report cache with per-user version invalidation.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores rendered reports keyed by user, filter and a per-user
// version counter. Invalidation bumps the counter, so stale entries are
// never served after a ride write; they simply age out via the TTL.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, userID string, f Filter) (Report, bool) {
	raw, err := c.rdb.Get(ctx, c.key(ctx, userID, f)).Result()
	if err != nil {
		return Report{}, false
	}
	var rep Report
	if err := json.Unmarshal([]byte(raw), &rep); err != nil {
		return Report{}, false
	}
	return rep, true
}

func (c *Cache) Set(ctx context.Context, userID string, f Filter, rep Report) {
	raw, err := json.Marshal(rep)
	if err != nil {
		return
	}
	// Best effort: a failed write just means the next request recomputes.
	_ = c.rdb.Set(ctx, c.key(ctx, userID, f), raw, c.ttl).Err()
}

// Invalidate drops every cached report for the user by bumping the
// version embedded in the keys.
func (c *Cache) Invalidate(ctx context.Context, userID string) {
	_ = c.rdb.Incr(ctx, versionKey(userID)).Err()
}

func (c *Cache) key(ctx context.Context, userID string, f Filter) string {
	ver, err := c.rdb.Get(ctx, versionKey(userID)).Result()
	if err != nil {
		ver = "0"
	}
	filterPart := strings.Join([]string{f.Month, f.ClientName, f.CarBrand, f.DateFrom, f.DateTo}, "|")
	return fmt.Sprintf("stats:report:%s:%s:%s", userID, ver, filterPart)
}

func versionKey(userID string) string {
	return "stats:ver:" + userID
}
