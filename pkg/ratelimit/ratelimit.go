package ratelimit

import (
	"sync"
	"time"
)

// Limiter: лимитер с фиксированным окном на каждый ключ
// Используется для ограничения попыток бронирования по IP клиента
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*entry
	now     func() time.Time
}

type entry struct {
	count       int
	windowStart time.Time
}

// New создает лимитер: не более limit событий на ключ за window
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow регистрирует попытку для ключа и возвращает false при превышении лимита
// Счётчик увеличивается и при отказе: окно не сдвигается, попытки в течение
// текущего окна лимит не продлевают
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[key]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.entries[key] = &entry{count: 1, windowStart: now}
		l.maybeSweep(now)
		return true
	}

	if e.count >= l.limit {
		return false
	}

	e.count++
	return true
}

// maybeSweep лениво удаляет истёкшие окна, чтобы карта не росла бесконечно
// Вызывается под мьютексом
func (l *Limiter) maybeSweep(now time.Time) {
	if len(l.entries) < 1024 {
		return
	}
	for k, e := range l.entries {
		if now.Sub(e.windowStart) >= l.window {
			delete(l.entries, k)
		}
	}
}
