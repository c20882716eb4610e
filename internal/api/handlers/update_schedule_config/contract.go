package update_schedule_config

import (
	"context"

	"github.com/meetlane/booking-service/internal/domain"
)

type AvailabilityStore interface {
	UpdateWeeklyTemplate(ctx context.Context, template domain.WeeklyTemplate) error
	UpdateBookingRules(ctx context.Context, rules domain.BookingRules) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
