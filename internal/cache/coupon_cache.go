// internal/cache/coupon_cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"mealbox-service/internal/domain/coupon"

	"github.com/redis/go-redis/v9"
)

const (
	couponKeyPrefix  = "coupon:code:"
	defaultCouponTTL = 5 * time.Minute
)

// CouponCache is a read-through cache for coupon lookups by code. Coupon
// evaluation runs on every cart keystroke, so lookups dominate writes by
// orders of magnitude.
type CouponCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCouponCache(client *redis.Client) *CouponCache {
	return &CouponCache{client: client, ttl: defaultCouponTTL}
}

// Get returns the cached coupon for a code, or (nil, false) on a miss. Cache
// failures degrade to a miss; the caller falls back to the repository.
func (c *CouponCache) Get(ctx context.Context, code string) (*coupon.Coupon, bool) {
	data, err := c.client.Get(ctx, c.key(code)).Bytes()
	if err != nil {
		return nil, false
	}

	var cp coupon.Coupon
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, false
	}
	return &cp, true
}

// Set stores a coupon under its code with the cache TTL.
func (c *CouponCache) Set(ctx context.Context, cp *coupon.Coupon) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(cp.Code), data, c.ttl).Err()
}

// Invalidate drops a code from the cache. Called after any coupon write so
// stale validity windows never outlive an operator edit.
func (c *CouponCache) Invalidate(ctx context.Context, code string) error {
	err := c.client.Del(ctx, c.key(code)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (c *CouponCache) key(code string) string {
	return couponKeyPrefix + strings.ToUpper(code)
}
