package googlecalendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meetlane/booking-service/pkg/interval"
)

func TestBusyCache_HitWithinTTL(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cache := newBusyCache(5 * time.Minute)
	cache.now = func() time.Time { return now }

	intervals := []interval.Interval{{Start: now, End: now.Add(time.Hour)}}
	cache.put("2026-03-10", intervals)

	now = now.Add(4 * time.Minute)
	got, ok := cache.get("2026-03-10")
	require.True(t, ok)
	require.Equal(t, intervals, got)
}

func TestBusyCache_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cache := newBusyCache(5 * time.Minute)
	cache.now = func() time.Time { return now }

	cache.put("2026-03-10", nil)

	now = now.Add(5*time.Minute + time.Second)
	_, ok := cache.get("2026-03-10")
	require.False(t, ok)
}

func TestBusyCache_InvalidateRemovesEntry(t *testing.T) {
	cache := newBusyCache(5 * time.Minute)
	cache.put("2026-03-10", nil)
	cache.put("2026-03-11", nil)

	cache.invalidate("2026-03-10")

	_, ok := cache.get("2026-03-10")
	require.False(t, ok)
	_, ok = cache.get("2026-03-11")
	require.True(t, ok)
}

func TestBusyCache_MissForUnknownDate(t *testing.T) {
	cache := newBusyCache(5 * time.Minute)

	_, ok := cache.get("2026-03-10")
	require.False(t, ok)
}
