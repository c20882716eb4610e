package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meetlane/booking-service/internal/domain"
	bookingRepo "github.com/meetlane/booking-service/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	getFn         func(ctx context.Context, id int64) (*domain.Booking, error)
	updateErr     error
	statusUpdates []domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return f.getFn(ctx, id)
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return f.updateErr
}

type fakeCalendar struct {
	deleted []string
	result  bool
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, eventID string) bool {
	f.deleted = append(f.deleted, eventID)
	return f.result
}

type fakeNotifier struct {
	cancelled []domain.BookingSnapshot
	err       error
}

func (f *fakeNotifier) BookingCancelled(ctx context.Context, snapshot domain.BookingSnapshot) error {
	f.cancelled = append(f.cancelled, snapshot)
	return f.err
}

func confirmedBooking(eventID *string) *domain.Booking {
	return &domain.Booking{
		ID:               5,
		ServiceID:        1,
		ServiceName:      "Consultation",
		ClientName:       "Jane Roe",
		ClientEmail:      "jane@example.com",
		StartUTC:         time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		DurationMinutes:  60,
		ProviderTimezone: "Europe/Berlin",
		Status:           domain.StatusConfirmed,
		ExternalEventID:  eventID,
	}
}

func TestExecute_InvalidBookingID(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeCalendar{}, &fakeNotifier{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{
		getFn: func(context.Context, int64) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}
	uc := NewUseCase(repo, &fakeCalendar{}, &fakeNotifier{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CancelsConfirmedBooking(t *testing.T) {
	eventID := "evt-42"
	repo := &fakeBookingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return confirmedBooking(&eventID), nil
		},
	}
	calendar := &fakeCalendar{result: true}
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, calendar, notifier, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5})
	require.NoError(t, err)
	require.Equal(t, int64(5), resp.BookingID)
	require.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.False(t, resp.AlreadyCancelled)

	require.Equal(t, []domain.BookingStatus{domain.StatusCancelled}, repo.statusUpdates)
	require.Equal(t, []string{"evt-42"}, calendar.deleted)
	require.Len(t, notifier.cancelled, 1)
	require.Equal(t, "evt-42", notifier.cancelled[0].ExternalEventID)
}

func TestExecute_NoCalendarEventNoDeleteCall(t *testing.T) {
	repo := &fakeBookingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return confirmedBooking(nil), nil
		},
	}
	calendar := &fakeCalendar{result: true}
	uc := NewUseCase(repo, calendar, &fakeNotifier{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5})
	require.NoError(t, err)
	require.Empty(t, calendar.deleted)
}

func TestExecute_CalendarDeleteFailureDoesNotFailCancellation(t *testing.T) {
	eventID := "evt-42"
	repo := &fakeBookingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return confirmedBooking(&eventID), nil
		},
	}
	calendar := &fakeCalendar{result: false}
	uc := NewUseCase(repo, calendar, &fakeNotifier{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCancelled), resp.Status)
}

// Повторная отмена идемпотентна: успех без обновления статуса,
// без удаления события и без второго уведомления
func TestExecute_RepeatedCancellationHasNoSideEffects(t *testing.T) {
	eventID := "evt-42"
	booking := confirmedBooking(&eventID)
	booking.Status = domain.StatusCancelled

	repo := &fakeBookingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return booking, nil
		},
	}
	calendar := &fakeCalendar{result: true}
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, calendar, notifier, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5})
	require.NoError(t, err)
	require.True(t, resp.AlreadyCancelled)
	require.Equal(t, string(domain.StatusCancelled), resp.Status)

	require.Empty(t, repo.statusUpdates)
	require.Empty(t, calendar.deleted)
	require.Empty(t, notifier.cancelled)
}

func TestExecute_UpdateStatusFailure(t *testing.T) {
	repo := &fakeBookingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return confirmedBooking(nil), nil
		},
		updateErr: errors.New("db down"),
	}
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, &fakeCalendar{}, notifier, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5})
	require.ErrorIs(t, err, ErrInternal)
	require.Empty(t, notifier.cancelled)
}
