package get_schedule_config

import (
	"context"

	"github.com/meetlane/booking-service/internal/domain"
)

type AvailabilityStore interface {
	GetWeeklyTemplate(ctx context.Context) (domain.WeeklyTemplate, error)
	GetBookingRules(ctx context.Context) (domain.BookingRules, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
