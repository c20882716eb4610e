package notify

import (
	"context"

	"github.com/meetlane/booking-service/internal/domain"
)

// Notifier: приемник событий бронирования. Ядро не знает, как
// доставляются уведомления.
type Notifier interface {
	BookingCreated(ctx context.Context, snapshot domain.BookingSnapshot) error
	BookingCancelled(ctx context.Context, snapshot domain.BookingSnapshot) error
}

// Noop: заглушка для запуска без настроенной доставки
type Noop struct{}

// BookingCreated ничего не делает
func (Noop) BookingCreated(ctx context.Context, snapshot domain.BookingSnapshot) error {
	return nil
}

// BookingCancelled ничего не делает
func (Noop) BookingCancelled(ctx context.Context, snapshot domain.BookingSnapshot) error {
	return nil
}
