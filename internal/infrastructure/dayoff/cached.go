package dayoff

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
	"github.com/taskman/taskman-api/internal/pkg/metrics"
)

// Cache stores day-off answers. found is false on a miss.
type Cache interface {
	Get(ctx context.Context, date domain.Date) (isDayOff, found bool, err error)
	Set(ctx context.Context, date domain.Date, isDayOff bool) error
}

// Cached consults cache before next. A failing cache never fails a lookup.
type Cached struct {
	next   ports.DayOffChecker
	cache  Cache
	logger zerolog.Logger
}

func NewCached(next ports.DayOffChecker, cache Cache, logger zerolog.Logger) *Cached {
	return &Cached{next: next, cache: cache, logger: logger}
}

func (c *Cached) IsDayOff(ctx context.Context, date domain.Date) (bool, error) {
	isDayOff, found, err := c.cache.Get(ctx, date)
	switch {
	case err != nil:
		metrics.DayOffLookupsTotal.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Str("date", date.String()).Msg("day-off cache read failed")
	case found:
		metrics.DayOffLookupsTotal.WithLabelValues("hit").Inc()
		return isDayOff, nil
	default:
		metrics.DayOffLookupsTotal.WithLabelValues("miss").Inc()
	}

	isDayOff, err = c.next.IsDayOff(ctx, date)
	if err != nil {
		return false, err
	}

	if err := c.cache.Set(ctx, date, isDayOff); err != nil {
		c.logger.Warn().Err(err).Str("date", date.String()).Msg("day-off cache write failed")
	}
	return isDayOff, nil
}
