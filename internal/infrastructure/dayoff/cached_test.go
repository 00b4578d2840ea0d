package dayoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskman/taskman-api/internal/core/domain"
)

type stubChecker struct {
	calls  int
	answer bool
	err    error
}

func (s *stubChecker) IsDayOff(context.Context, domain.Date) (bool, error) {
	s.calls++
	return s.answer, s.err
}

type memCache struct {
	values map[string]bool
	getErr error
	setErr error
}

func newMemCache() *memCache { return &memCache{values: map[string]bool{}} }

func (m *memCache) Get(_ context.Context, date domain.Date) (bool, bool, error) {
	if m.getErr != nil {
		return false, false, m.getErr
	}
	v, ok := m.values[date.String()]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, date domain.Date, isDayOff bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[date.String()] = isDayOff
	return nil
}

var saturday = domain.NewDate(2030, time.June, 1)

func TestCached_MissThenHit(t *testing.T) {
	next := &stubChecker{answer: true}
	cache := newMemCache()
	c := NewCached(next, cache, zerolog.Nop())

	for i := 0; i < 3; i++ {
		got, err := c.IsDayOff(context.Background(), saturday)
		require.NoError(t, err)
		assert.True(t, got)
	}
	assert.Equal(t, 1, next.calls)
	assert.True(t, cache.values["2030-06-01"])
}

func TestCached_CachesWorkingDays(t *testing.T) {
	next := &stubChecker{answer: false}
	c := NewCached(next, newMemCache(), zerolog.Nop())

	_, _ = c.IsDayOff(context.Background(), saturday)
	got, err := c.IsDayOff(context.Background(), saturday)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, 1, next.calls)
}

func TestCached_UpstreamErrorNotCached(t *testing.T) {
	next := &stubChecker{err: domain.ErrUpstream}
	cache := newMemCache()
	c := NewCached(next, cache, zerolog.Nop())

	_, err := c.IsDayOff(context.Background(), saturday)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Empty(t, cache.values)
}

func TestCached_BrokenCacheIsBypassed(t *testing.T) {
	next := &stubChecker{answer: true}
	cache := newMemCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	c := NewCached(next, cache, zerolog.Nop())

	got, err := c.IsDayOff(context.Background(), saturday)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 1, next.calls)
}
