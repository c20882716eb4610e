package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/meetlane/booking-service/internal/domain"
	bookingRepo "github.com/meetlane/booking-service/internal/infra/storage/booking"
	"github.com/meetlane/booking-service/pkg/ptr"
)

// UseCase use case отмены бронирования.
// Идемпотентен: повторная отмена: успех без побочных эффектов.
type UseCase struct {
	bookingRepo BookingRepository
	calendar    CalendarClient
	notifier    Notifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, calendar CalendarClient, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		calendar:    calendar,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d", req.BookingID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Повторная отмена: успех, без удаления события и без уведомления
	if booking.IsCancelled() {
		uc.logger.Info("CancelBooking: booking id=%d already cancelled", req.BookingID)
		return &Response{
			BookingID:        booking.ID,
			Status:           string(domain.StatusCancelled),
			AlreadyCancelled: true,
		}, nil
	}

	// 4. Переводим в cancelled
	if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCancelled); err != nil {
		uc.logger.Error("CancelBooking: failed to update status for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	// 5. Событие календаря удаляется best effort: сбой не отменяет отмену
	if booking.ExternalEventID != nil && *booking.ExternalEventID != "" {
		if !uc.calendar.DeleteEvent(ctx, *booking.ExternalEventID) {
			uc.logger.Warn("CancelBooking: calendar event %s for booking id=%d not deleted",
				*booking.ExternalEventID, booking.ID)
		}
	}

	// 6. Уведомление отправляется ровно один раз, при первой отмене
	booking.Status = domain.StatusCancelled
	if err := uc.notifier.BookingCancelled(ctx, snapshotOf(booking)); err != nil {
		uc.logger.Error("CancelBooking: booking cancelled notification failed: %v", err)
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled", booking.ID)

	return &Response{
		BookingID: booking.ID,
		Status:    string(domain.StatusCancelled),
	}, nil
}

// snapshotOf собирает снимок бронирования для уведомления
func snapshotOf(b *domain.Booking) domain.BookingSnapshot {
	return domain.BookingSnapshot{
		BookingID:        b.ID,
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		ClientName:       b.ClientName,
		ClientEmail:      b.ClientEmail,
		ClientPhone:      b.ClientPhone,
		ClientNotes:      b.ClientNotes,
		StartUTC:         b.StartUTC,
		DurationMinutes:  b.DurationMinutes,
		ProviderTimezone: b.ProviderTimezone,
		ExternalEventID:  ptr.Deref(b.ExternalEventID),
	}
}
