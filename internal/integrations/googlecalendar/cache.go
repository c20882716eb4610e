package googlecalendar

import (
	"sync"
	"time"

	"github.com/meetlane/booking-service/pkg/interval"
)

// cacheTTL: срок жизни записей freebusy-кэша
const cacheTTL = 5 * time.Minute

type cacheEntry struct {
	intervals []interval.Interval
	fetchedAt time.Time
}

// busyCache: внутрипроцессный кэш занятых интервалов по дате.
// Кэшируются только успешные ответы; корректность бронирования от кэша
// не зависит: путь записи всегда идёт через свежий запрос.
type busyCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func newBusyCache(ttl time.Duration) *busyCache {
	return &busyCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *busyCache) get(date string) ([]interval.Interval, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[date]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		delete(c.entries, date)
		return nil, false
	}
	return entry.intervals, true
}

func (c *busyCache) put(date string, intervals []interval.Interval) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[date] = cacheEntry{intervals: intervals, fetchedAt: c.now()}
}

func (c *busyCache) invalidate(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, date)
}
