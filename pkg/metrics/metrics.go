package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics содержит все prometheus-коллекторы сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingsCreatedTotal   prometheus.Counter
	BookingsCancelledTotal prometheus.Counter
	SlotRequestsTotal      prometheus.Counter
	RateLimitRejectsTotal  prometheus.Counter

	CalendarRequestsTotal *prometheus.CounterVec

	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     prometheus.Gauge
	DBIdleConns     prometheus.Gauge
	DBWaitCount     prometheus.Gauge
}

// New регистрирует и возвращает коллекторы для указанного сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, route and status code.",
			ConstLabels: labels,
		}, []string{"method", "route", "code"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration by method and route.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		BookingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total bookings successfully created.",
			ConstLabels: labels,
		}),

		BookingsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total bookings cancelled.",
			ConstLabels: labels,
		}),

		SlotRequestsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_requests_total",
			Help:        "Total slot availability computations.",
			ConstLabels: labels,
		}),

		RateLimitRejectsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "rate_limit_rejects_total",
			Help:        "Booking attempts rejected by the per-IP rate limit.",
			ConstLabels: labels,
		}),

		CalendarRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_requests_total",
			Help:        "Outbound Google Calendar API calls by operation and outcome.",
			ConstLabels: labels,
		}, []string{"operation", "outcome"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration by operation.",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBOpenConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections.",
			ConstLabels: labels,
		}),

		DBIdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections.",
			ConstLabels: labels,
		}),

		DBWaitCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Cumulative connections waited for.",
			ConstLabels: labels,
		}),
	}
}

// CalendarCall инкрементирует счётчик вызовов календаря
func (m *Metrics) CalendarCall(operation, outcome string) {
	if m == nil {
		return
	}
	m.CalendarRequestsTotal.WithLabelValues(operation, outcome).Inc()
}
