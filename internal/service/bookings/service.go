package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	bookingRepo "github.com/meetlane/booking-service/internal/infra/storage/booking"
)

// Reader: сервис чтения бронирований для админских ручек.
// Запись идёт только через usecase создания/отмены.
type Reader struct {
	repo   BookingRepository
	logger Logger
}

// NewReader создает новый экземпляр сервиса чтения бронирований
func NewReader(repo BookingRepository, logger Logger) *Reader {
	return &Reader{
		repo:   repo,
		logger: logger,
	}
}

// GetByID получает бронирование по ID
func (r *Reader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// ListByDateRange возвращает бронирования с началом в [startUTC, endUTC)
func (r *Reader) ListByDateRange(ctx context.Context, startUTC, endUTC time.Time) ([]*domain.Booking, error) {
	if !startUTC.Before(endUTC) {
		return nil, ErrInvalidRange
	}

	list, err := r.repo.ListByDateRange(ctx, startUTC, endUTC)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - repository error: %v", ErrInternal, err)
	}
	return list, nil
}
