package cancel_booking

import (
	"context"

	"github.com/meetlane/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// CalendarClient интерфейс адаптера внешнего календаря
type CalendarClient interface {
	DeleteEvent(ctx context.Context, eventID string) bool
}

// Notifier интерфейс отправки уведомлений о бронированиях
type Notifier interface {
	BookingCancelled(ctx context.Context, snapshot domain.BookingSnapshot) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
