package busy

import (
	"context"
	"fmt"
	"time"

	"github.com/meetlane/booking-service/pkg/interval"
	"github.com/meetlane/booking-service/pkg/types"
)

// LocalProvider: занятость из собственных подтвержденных бронирований.
// Всегда читает хранилище напрямую, без кэша.
type LocalProvider struct {
	repo     BookingRepository
	location *time.Location
}

// NewLocalProvider создает источник занятости из локальных бронирований
func NewLocalProvider(repo BookingRepository, location *time.Location) *LocalProvider {
	return &LocalProvider{
		repo:     repo,
		location: location,
	}
}

// GetBusy возвращает интервалы подтвержденных бронирований, пересекающих дату.
// Границы дня берутся в часовом поясе провайдера, запрос идёт в UTC.
func (p *LocalProvider) GetBusy(ctx context.Context, date string) ([]interval.Interval, error) {
	day, err := types.ParseDate(date, p.location)
	if err != nil {
		return nil, fmt.Errorf("busy: LocalProvider.GetBusy - bad date %q: %w", date, err)
	}

	dayStart := day.UTC()
	dayEnd := day.AddDate(0, 0, 1).UTC()

	bookings, err := p.repo.FindConfirmedOverlapping(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("busy: LocalProvider.GetBusy - repository: %w", err)
	}

	intervals := make([]interval.Interval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, interval.Interval{
			Start: b.StartUTC.In(p.location),
			End:   b.EndUTC().In(p.location),
		})
	}

	return intervals, nil
}
