package middleware

import (
	"net"
	"net/http"

	"github.com/meetlane/booking-service/internal/api/handlers"
	"github.com/meetlane/booking-service/pkg/metrics"
	"github.com/meetlane/booking-service/pkg/ratelimit"
)

const msgRateLimited = "too many booking attempts, try again later"

// RateLimitLogger интерфейс для логирования
type RateLimitLogger interface {
	Warn(format string, v ...interface{})
}

// RateLimit отклоняет запросы сверх лимита попыток бронирования с одного IP.
// IP берется только из RemoteAddr: заголовкам прокси доверять нельзя,
// они подделываются клиентом.
func RateLimit(limiter *ratelimit.Limiter, m *metrics.Metrics, logger RateLimitLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !limiter.Allow(ip) {
				logger.Warn("RateLimit: booking attempt from %s rejected", ip)
				if m != nil {
					m.RateLimitRejectsTotal.Inc()
				}
				handlers.RespondTooManyRequests(w, msgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP извлекает IP прямого соединения
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
