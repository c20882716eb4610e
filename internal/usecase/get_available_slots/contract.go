package get_available_slots

import (
	"context"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/pkg/interval"
	"github.com/meetlane/booking-service/pkg/types"
)

// ServiceRegistry интерфейс каталога услуг
type ServiceRegistry interface {
	Get(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityStore интерфейс хранилища шаблона доступности и правил
type AvailabilityStore interface {
	GetWeeklyTemplate(ctx context.Context) (domain.WeeklyTemplate, error)
	GetBookingRules(ctx context.Context) (domain.BookingRules, error)
}

// BusySource источник занятых интервалов на дату
type BusySource interface {
	GetBusy(ctx context.Context, date string) ([]interval.Interval, error)
}

// SlotFilter: точка расширения: пост-обработка списка слотов.
// Вызывается на каждом пути возврата, кроме несуществующей или
// неактивной услуги.
type SlotFilter func(slots []types.TimeString, date string, serviceID int64) []types.TimeString

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
