package create_booking

import (
	"context"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	slots "github.com/meetlane/booking-service/internal/usecase/get_available_slots"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// InsertIfNoOverlap атомарно вставляет бронирование, если его интервал
	// не пересекается ни с одним подтвержденным
	InsertIfNoOverlap(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SetExternalEventID(ctx context.Context, id int64, eventID string) error
}

// ServiceRegistry интерфейс каталога услуг
type ServiceRegistry interface {
	Get(ctx context.Context, id int64) (*domain.Service, error)
}

// SlotCalculator интерфейс расчета доступных слотов для свежей перепроверки
type SlotCalculator interface {
	Execute(ctx context.Context, req *slots.Request) (*slots.Response, error)
}

// CalendarClient интерфейс адаптера внешнего календаря
type CalendarClient interface {
	// Invalidate сбрасывает кэш занятости на дату перед перепроверкой
	Invalidate(date string)
	PushEvent(ctx context.Context, booking *domain.Booking) (string, bool)
}

// DistributedLock: межпроцессная взаимная блокировка с ограниченным ожиданием.
// Release обязан вызываться на всех путях выхода.
type DistributedLock interface {
	Acquire(ctx context.Context, name string, wait time.Duration) (release func(), err error)
}

// Notifier интерфейс отправки уведомлений о бронированиях
type Notifier interface {
	BookingCreated(ctx context.Context, snapshot domain.BookingSnapshot) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
