package list_bookings

import (
	"context"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
)

type BookingReader interface {
	ListByDateRange(ctx context.Context, startUTC, endUTC time.Time) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
