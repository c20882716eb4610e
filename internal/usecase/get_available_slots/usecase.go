package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meetlane/booking-service/internal/service/services"
	"github.com/meetlane/booking-service/pkg/interval"
	"github.com/meetlane/booking-service/pkg/types"
)

// UseCase use case расчета доступных слотов.
// Чтение без побочных эффектов; безопасен для конкурентных вызовов.
type UseCase struct {
	registry     ServiceRegistry
	availability AvailabilityStore
	busySources  []BusySource
	filters      []SlotFilter
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// Фильтры применяются к итоговому списку слотов по порядку регистрации.
func NewUseCase(
	registry ServiceRegistry,
	availability AvailabilityStore,
	busySources []BusySource,
	location *time.Location,
	logger Logger,
	filters ...SlotFilter,
) *UseCase {
	return &UseCase{
		registry:     registry,
		availability: availability,
		busySources:  busySources,
		filters:      filters,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет расчет доступных слотов на дату.
// Каждый шаг при неуспехе укорачивает ответ до пустого списка; ошибка
// наружу уходит только при сбое хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, service=%d", req.Date, req.ServiceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата: строгий разбор YYYY-MM-DD в часовом поясе провайдера
	day, err := types.ParseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: malformed date %q", req.Date)
		return uc.respond(req, 0, nil), nil
	}

	now := uc.timeProvider.Now().In(uc.location)

	// 3. Правила бронирования читаются заново при каждом запросе
	rules, err := uc.availability.GetBookingRules(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booking rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking rules: %v", ErrInternal, err)
	}

	// 4. Прошлое и горизонт бронирования
	if isDateInPast(day, now) || isBeyondHorizon(day, now, rules.HorizonDays) {
		return uc.respond(req, 0, nil), nil
	}

	// 5. Услуга должна существовать и быть активной.
	// Это ошибка входа, а не пустой бизнес-результат: фильтры не вызываются.
	service, err := uc.registry.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return &Response{Date: req.Date, ServiceID: req.ServiceID, Slots: []types.TimeString{}}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return &Response{Date: req.Date, ServiceID: req.ServiceID, Slots: []types.TimeString{}}, nil
	}

	// 6. Окна доступности на день недели
	template, err := uc.availability.GetWeeklyTemplate(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get weekly template: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly template: %v", ErrInternal, err)
	}

	dayWindows := template.WindowsFor(day)
	if len(dayWindows) == 0 {
		return uc.respond(req, service.DurationMinutes, nil), nil
	}

	windows, err := compileWindows(dayWindows, day, uc.location)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compile windows: %v", err)
		return nil, fmt.Errorf("%w: failed to compile windows: %v", ErrInternal, err)
	}

	// 7. Занятость: локальные бронирования и внешний календарь, конкатенация
	var busy []interval.Interval
	for _, source := range uc.busySources {
		intervals, err := source.GetBusy(ctx, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: busy source failed: %v", err)
			return nil, fmt.Errorf("%w: busy source failed: %v", ErrInternal, err)
		}
		busy = append(busy, intervals...)
	}

	// 8. Буферизация и слияние занятых интервалов
	merged := interval.Merge(interval.Buffer(busy, rules.BufferMinutes))

	// 9. Минимальное время начала с учетом уведомления
	earliest := now.Add(time.Duration(rules.MinNoticeHours) * time.Hour)

	// 10. Обход окон с фиксированным шагом
	slots := walkWindows(windows, service.DurationMinutes, earliest, merged)

	uc.logger.Info("GetAvailableSlots: date=%s, service=%d: %d slot(s)", req.Date, req.ServiceID, len(slots))
	return uc.respond(req, service.DurationMinutes, slots), nil
}

// respond применяет фильтры и формирует ответ
func (uc *UseCase) respond(req *Request, durationMinutes int, slots []types.TimeString) *Response {
	if slots == nil {
		slots = []types.TimeString{}
	}
	for _, filter := range uc.filters {
		slots = filter(slots, req.Date, req.ServiceID)
		if slots == nil {
			slots = []types.TimeString{}
		}
	}

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}
}
