package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskman/taskman-api/internal/core/domain"
)

const DefaultDayOffTTL = 24 * time.Hour

// DayOffCache keeps day-off answers under dayoff:<YYYY-MM-DD>.
// Values are "1" for a day off and "0" for a working day.
type DayOffCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDayOffCache(client *redis.Client, ttl time.Duration) *DayOffCache {
	if ttl <= 0 {
		ttl = DefaultDayOffTTL
	}
	return &DayOffCache{client: client, ttl: ttl}
}

// Get reports the cached answer for date. found is false on a cache miss.
func (c *DayOffCache) Get(ctx context.Context, date domain.Date) (isDayOff, found bool, err error) {
	val, err := c.client.Get(ctx, dayOffKey(date)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("dayoff cache get: %w", err)
	}
	return parseDayOff(val)
}

func (c *DayOffCache) Set(ctx context.Context, date domain.Date, isDayOff bool) error {
	val := "0"
	if isDayOff {
		val = "1"
	}
	if err := c.client.Set(ctx, dayOffKey(date), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("dayoff cache set: %w", err)
	}
	return nil
}

func dayOffKey(date domain.Date) string {
	return "dayoff:" + date.String()
}

func parseDayOff(val string) (isDayOff, found bool, err error) {
	switch val {
	case "1":
		return true, true, nil
	case "0":
		return false, true, nil
	}
	return false, false, fmt.Errorf("dayoff cache: unexpected value %q", val)
}
