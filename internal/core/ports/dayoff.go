package ports

import (
	"context"

	"github.com/taskman/taskman-api/internal/core/domain"
)

// DayOffChecker reports whether a date is a non-working day.
// Failures of the underlying service are wrapped in domain.ErrUpstream.
type DayOffChecker interface {
	IsDayOff(ctx context.Context, date domain.Date) (bool, error)
}
