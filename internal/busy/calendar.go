package busy

import (
	"context"

	"github.com/meetlane/booking-service/pkg/interval"
)

// CalendarProvider: занятость из внешнего календаря.
// Адаптер деградирует сам, поэтому источник никогда не возвращает ошибку.
// Путь создания бронирования получает свежие данные не отдельным
// источником, а сбросом кэша даты перед пересчетом слотов.
type CalendarProvider struct {
	client CalendarClient
}

// NewCalendarProvider создает источник занятости из внешнего календаря
func NewCalendarProvider(client CalendarClient) *CalendarProvider {
	return &CalendarProvider{client: client}
}

// GetBusy возвращает занятые интервалы внешнего календаря
func (p *CalendarProvider) GetBusy(ctx context.Context, date string) ([]interval.Interval, error) {
	return p.client.GetBusy(ctx, date), nil
}
