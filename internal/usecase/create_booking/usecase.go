package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	bookingRepo "github.com/meetlane/booking-service/internal/infra/storage/booking"
	"github.com/meetlane/booking-service/internal/infra/storage/lock"
	"github.com/meetlane/booking-service/internal/service/services"
	slots "github.com/meetlane/booking-service/internal/usecase/get_available_slots"
	"github.com/meetlane/booking-service/pkg/ptr"
)

// lockWait: предел ожидания блокировки даты
const lockWait = 10 * time.Second

// UseCase use case создания бронирования.
//
// Три независимых слоя защиты от двойного бронирования:
//  1. свежая перепроверка слотов (сброс кэша календаря + пересчет);
//  2. распределённая блокировка по дате с ограниченным ожиданием;
//  3. атомарная условная вставка как окончательная проверка, корректная
//     даже если блокировка недоступна или обойдена.
type UseCase struct {
	bookingRepo  BookingRepository
	registry     ServiceRegistry
	slots        SlotCalculator
	calendar     CalendarClient
	distLock     DistributedLock
	notifier     Notifier
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	registry ServiceRegistry,
	slotCalc SlotCalculator,
	calendar CalendarClient,
	distLock DistributedLock,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		registry:     registry,
		slots:        slotCalc,
		calendar:     calendar,
		distLock:     distLock,
		notifier:     notifier,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s", req.ServiceID, req.Date, req.Time)

	// 1. Валидация входных данных, без побочных эффектов
	day, startTime, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга должна существовать и быть активной
	service, err := uc.registry.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrInvalidService
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrInvalidService
	}

	// 3. Слой 1: свежая перепроверка. Кэш календаря на дату сбрасывается,
	// слоты пересчитываются; отсутствие запрошенного времени в списке
	// означает, что слот занят.
	uc.calendar.Invalidate(req.Date)

	fresh, err := uc.slots.Execute(ctx, &slots.Request{Date: req.Date, ServiceID: req.ServiceID})
	if err != nil {
		uc.logger.Error("CreateBooking: fresh slot recheck failed: %v", err)
		return nil, fmt.Errorf("%w: slot recheck failed: %v", ErrInternal, err)
	}
	if !slotListed(startTime, fresh.Slots) {
		uc.logger.Warn("CreateBooking: time %s not in fresh slots for %s", req.Time, req.Date)
		return nil, ErrSlotTaken
	}

	// 4. Слой 2: распределённая блокировка по дате. Скоуп только дата,
	// не дата+услуга: занятость внешнего календаря общая для всех услуг.
	lockName := fmt.Sprintf("booking:%s", req.Date)

	release, err := uc.distLock.Acquire(ctx, lockName, lockWait)
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			uc.logger.Warn("CreateBooking: lock %s not acquired within %s", lockName, lockWait)
			return nil, ErrServerBusy
		}
		uc.logger.Error("CreateBooking: lock %s acquisition failed: %v", lockName, err)
		return nil, fmt.Errorf("%w: lock acquisition failed: %v", ErrServerBusy, err)
	}
	defer release()

	// 5. Слой 3: атомарная условная вставка
	startLocal, err := startTime.At(day, uc.location)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to anchor start time: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		ServiceID:        service.ID,
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientPhone:      req.ClientPhone,
		ClientNotes:      req.ClientNotes,
		StartUTC:         startLocal.UTC(),
		DurationMinutes:  service.DurationMinutes,
		ProviderTimezone: uc.location.String(),
		Status:           domain.StatusConfirmed,
		ServiceName:      service.Name,
	}

	created, err := uc.bookingRepo.InsertIfNoOverlap(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: conditional insert lost the race (lock=%s)", lockName)
			return nil, ErrSlotTaken
		}
		// Сбой хранилища на вставке: временная ошибка, клиент может повторить
		uc.logger.Error("CreateBooking: conditional insert failed (lock=%s, date=%s): %v", lockName, req.Date, err)
		return nil, fmt.Errorf("%w: storage failure on insert: %v", ErrServerBusy, err)
	}

	uc.logger.Info("CreateBooking: booking id=%d created for %s %s", created.ID, req.Date, req.Time)

	// 6. Post-commit: событие календаря, best effort. Сбой логируется,
	// бронирование остаётся в силе.
	if eventID, ok := uc.calendar.PushEvent(ctx, created); ok {
		if err := uc.bookingRepo.SetExternalEventID(ctx, created.ID, eventID); err != nil {
			uc.logger.Error("CreateBooking: failed to store event id for booking %d: %v", created.ID, err)
		} else {
			created.ExternalEventID = ptr.Ptr(eventID)
		}
	}

	// 7. Уведомление со снимком бронирования
	snapshot := snapshotOf(created)
	if err := uc.notifier.BookingCreated(ctx, snapshot); err != nil {
		uc.logger.Error("CreateBooking: booking created notification failed: %v", err)
	}

	return &Response{
		ID:              created.ID,
		ServiceID:       created.ServiceID,
		ServiceName:     created.ServiceName,
		ClientName:      created.ClientName,
		ClientEmail:     created.ClientEmail,
		Date:            req.Date,
		StartTime:       startTime,
		DurationMinutes: created.DurationMinutes,
		Status:          string(created.Status),
		ExternalEventID: created.ExternalEventID,
		CreatedAt:       created.CreatedAt,
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
