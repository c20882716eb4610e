package busy

import (
	"context"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/pkg/interval"
)

// BookingRepository интерфейс чтения подтвержденных бронирований
type BookingRepository interface {
	FindConfirmedOverlapping(ctx context.Context, startUTC, endUTC time.Time) ([]*domain.Booking, error)
}

// CalendarClient интерфейс адаптера внешнего календаря
type CalendarClient interface {
	GetBusy(ctx context.Context, date string) []interval.Interval
}
