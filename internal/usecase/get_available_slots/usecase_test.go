package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/internal/service/services"
	"github.com/meetlane/booking-service/pkg/interval"
	"github.com/meetlane/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeRegistry struct {
	getFn func(ctx context.Context, id int64) (*domain.Service, error)
}

func (f *fakeRegistry) Get(ctx context.Context, id int64) (*domain.Service, error) {
	return f.getFn(ctx, id)
}

type fakeAvailability struct {
	template    domain.WeeklyTemplate
	rules       domain.BookingRules
	templateErr error
	rulesErr    error
}

func (f *fakeAvailability) GetWeeklyTemplate(context.Context) (domain.WeeklyTemplate, error) {
	return f.template, f.templateErr
}

func (f *fakeAvailability) GetBookingRules(context.Context) (domain.BookingRules, error) {
	return f.rules, f.rulesErr
}

type fakeBusySource struct {
	intervals []interval.Interval
	err       error
}

func (f *fakeBusySource) GetBusy(context.Context, string) ([]interval.Interval, error) {
	return f.intervals, f.err
}

// 2026-03-10: вторник
const testDate = "2026-03-10"

func busyAt(startHour, startMin, endHour, endMin int) interval.Interval {
	return interval.Interval{
		Start: time.Date(2026, 3, 10, startHour, startMin, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 10, endHour, endMin, 0, 0, time.UTC),
	}
}

func activeService(durationMinutes int) *fakeRegistry {
	return &fakeRegistry{
		getFn: func(ctx context.Context, id int64) (*domain.Service, error) {
			return &domain.Service{ID: id, Name: "Consultation", DurationMinutes: durationMinutes, IsActive: true}, nil
		},
	}
}

func tuesdayTemplate(windows ...domain.Window) domain.WeeklyTemplate {
	return domain.WeeklyTemplate{time.Tuesday: windows}
}

func newTestUseCase(registry ServiceRegistry, availability AvailabilityStore, busy []BusySource, now time.Time, filters ...SlotFilter) *UseCase {
	uc := NewUseCase(registry, availability, busy, time.UTC, nopLogger{}, filters...)
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func TestExecute_WalksWindowWithFixedStride(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "12:00"}),
		rules:    domain.BookingRules{BufferMinutes: 0, MinNoticeHours: 2, HorizonDays: 60},
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(activeService(60), availability, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.Equal(t, 60, resp.DurationMinutes)
	require.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}, resp.Slots)
}

func TestExecute_BufferedBusyBlocksOverlappingCandidates(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "12:00"}),
		rules:    domain.BookingRules{BufferMinutes: 30, MinNoticeHours: 2, HorizonDays: 60},
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	busy := []BusySource{&fakeBusySource{intervals: []interval.Interval{busyAt(10, 0, 10, 30)}}}

	uc := newTestUseCase(activeService(60), availability, busy, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)

	// Занятость 10:00-10:30 с буфером 30 минут блокирует 09:30-11:00;
	// кандидат 11:00-12:00 соприкасается с буфером и остаётся свободным
	require.Equal(t, []types.TimeString{"11:00"}, resp.Slots)
}

func TestExecute_MinNoticeCutsEarlySlots(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "11:00"}),
		rules:    domain.BookingRules{BufferMinutes: 0, MinNoticeHours: 2, HorizonDays: 60},
	}
	// 07:31 + 2 часа = 09:31: кандидат 09:30 отпадает, 10:00 остаётся
	now := time.Date(2026, 3, 10, 7, 31, 0, 0, time.UTC)

	uc := newTestUseCase(activeService(60), availability, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.Equal(t, []types.TimeString{"10:00"}, resp.Slots)
}

func TestExecute_MinNoticeExactBoundaryIncluded(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "11:30"}),
		rules:    domain.BookingRules{BufferMinutes: 0, MinNoticeHours: 2, HorizonDays: 60},
	}
	// 08:00 + 2 часа = 10:00 ровно: кандидат 10:00 проходит, 09:30 нет
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(activeService(60), availability, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.Equal(t, []types.TimeString{"10:00", "10:30"}, resp.Slots)
}

func TestExecute_HorizonExactBoundaryAllowed(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "11:00"}),
		rules:    domain.BookingRules{BufferMinutes: 0, MinNoticeHours: 2, HorizonDays: 14},
	}
	// 2026-02-24 + 14 дней = 2026-03-10: дата ровно на горизонте доступна
	now := time.Date(2026, 2, 24, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(activeService(60), availability, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, resp.Slots)
}

func TestExecute_BufferConsumesWholeWindow(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "11:00"}),
		rules:    domain.BookingRules{BufferMinutes: 30, MinNoticeHours: 2, HorizonDays: 60},
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	// Занятость 09:30-10:00 с буфером 30 минут покрывает 09:00-10:30:
	// ни один часовой кандидат окна не выживает
	busy := []BusySource{&fakeBusySource{intervals: []interval.Interval{busyAt(9, 30, 10, 0)}}}

	uc := newTestUseCase(activeService(60), availability, busy, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.NotNil(t, resp.Slots)
	require.Empty(t, resp.Slots)
}

func TestExecute_DurationNotMultipleOfStride(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "10:30"}),
		rules:    domain.BookingRules{BufferMinutes: 0, MinNoticeHours: 2, HorizonDays: 60},
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(activeService(45), availability, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)

	// 45 минут: 09:00-09:45 и 09:30-10:15 помещаются, 10:00-10:45 выходит за окно
	require.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.Slots)
}

func TestExecute_MultipleBusySourcesAreConcatenated(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "11:00"}),
		rules:    domain.BookingRules{BufferMinutes: 0, MinNoticeHours: 2, HorizonDays: 60},
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	busy := []BusySource{
		&fakeBusySource{intervals: []interval.Interval{busyAt(9, 0, 9, 30)}},
		&fakeBusySource{intervals: []interval.Interval{busyAt(10, 30, 11, 0)}},
	}

	uc := newTestUseCase(activeService(30), availability, busy, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.Equal(t, []types.TimeString{"09:30", "10:00"}, resp.Slots)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	availability := &fakeAvailability{rules: domain.DefaultBookingRules()}
	now := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(activeService(60), availability, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.Empty(t, resp.Slots)
	require.NotNil(t, resp.Slots)
}

func TestExecute_BeyondHorizonReturnsEmpty(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "12:00"}),
		rules:    domain.BookingRules{BufferMinutes: 0, MinNoticeHours: 2, HorizonDays: 14},
	}
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(activeService(60), availability, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.Empty(t, resp.Slots)
}

func TestExecute_MalformedDateReturnsEmptyAndRunsFilters(t *testing.T) {
	availability := &fakeAvailability{rules: domain.DefaultBookingRules()}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	filterCalls := 0
	filter := func(slots []types.TimeString, date string, serviceID int64) []types.TimeString {
		filterCalls++
		require.Equal(t, "2026-02-30", date)
		return slots
	}

	uc := newTestUseCase(activeService(60), availability, nil, now, filter)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-02-30", ServiceID: 1})
	require.NoError(t, err)
	require.Empty(t, resp.Slots)
	require.Equal(t, 1, filterCalls)
}

func TestExecute_UnknownServiceReturnsEmptyWithoutFilters(t *testing.T) {
	availability := &fakeAvailability{rules: domain.DefaultBookingRules()}
	registry := &fakeRegistry{
		getFn: func(context.Context, int64) (*domain.Service, error) {
			return nil, services.ErrServiceNotFound
		},
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	filterCalls := 0
	filter := func(slots []types.TimeString, date string, serviceID int64) []types.TimeString {
		filterCalls++
		return slots
	}

	uc := newTestUseCase(registry, availability, nil, now, filter)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 42})
	require.NoError(t, err)
	require.Empty(t, resp.Slots)
	require.Zero(t, filterCalls)
}

func TestExecute_InactiveServiceReturnsEmptyWithoutFilters(t *testing.T) {
	availability := &fakeAvailability{rules: domain.DefaultBookingRules()}
	registry := &fakeRegistry{
		getFn: func(ctx context.Context, id int64) (*domain.Service, error) {
			return &domain.Service{ID: id, DurationMinutes: 60, IsActive: false}, nil
		},
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	filterCalls := 0
	filter := func(slots []types.TimeString, date string, serviceID int64) []types.TimeString {
		filterCalls++
		return slots
	}

	uc := newTestUseCase(registry, availability, nil, now, filter)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.Empty(t, resp.Slots)
	require.Zero(t, filterCalls)
}

func TestExecute_NoWindowsForWeekdayReturnsEmpty(t *testing.T) {
	availability := &fakeAvailability{
		template: domain.WeeklyTemplate{time.Monday: {{Start: "09:00", End: "12:00"}}},
		rules:    domain.BookingRules{BufferMinutes: 0, MinNoticeHours: 2, HorizonDays: 60},
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(activeService(60), availability, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)
	require.Empty(t, resp.Slots)
	require.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newTestUseCase(activeService(60), &fakeAvailability{}, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: "", ServiceID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StorageFailuresSurfaceAsInternal(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	t.Run("booking rules", func(t *testing.T) {
		availability := &fakeAvailability{rulesErr: errors.New("db down")}
		uc := newTestUseCase(activeService(60), availability, nil, now)

		_, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("weekly template", func(t *testing.T) {
		availability := &fakeAvailability{
			rules:       domain.DefaultBookingRules(),
			templateErr: errors.New("db down"),
		}
		uc := newTestUseCase(activeService(60), availability, nil, now)

		_, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("busy source", func(t *testing.T) {
		availability := &fakeAvailability{
			template: tuesdayTemplate(domain.Window{Start: "09:00", End: "12:00"}),
			rules:    domain.DefaultBookingRules(),
		}
		busy := []BusySource{&fakeBusySource{err: errors.New("db down")}}
		uc := newTestUseCase(activeService(60), availability, busy, now)

		_, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
		require.ErrorIs(t, err, ErrInternal)
	})
}

func TestExecute_FiltersChainInOrder(t *testing.T) {
	availability := &fakeAvailability{
		template: tuesdayTemplate(domain.Window{Start: "09:00", End: "10:30"}),
		rules:    domain.BookingRules{BufferMinutes: 0, MinNoticeHours: 2, HorizonDays: 60},
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	dropFirst := func(slots []types.TimeString, date string, serviceID int64) []types.TimeString {
		if len(slots) == 0 {
			return slots
		}
		return slots[1:]
	}
	nilify := func(slots []types.TimeString, date string, serviceID int64) []types.TimeString {
		if len(slots) == 0 {
			return nil
		}
		return slots
	}

	uc := newTestUseCase(activeService(90), availability, nil, now, dropFirst, dropFirst, nilify)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceID: 1})
	require.NoError(t, err)

	// Без фильтров было бы [09:00]; цепочка укорачивает до пустого,
	// а nil от фильтра нормализуется в пустой список
	require.NotNil(t, resp.Slots)
	require.Empty(t, resp.Slots)
}
