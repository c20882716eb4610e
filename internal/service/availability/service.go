package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/internal/infra/storage/settings"
)

// weekdayNames: ключи сериализации шаблона, по одному на день недели
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// Service: хранилище шаблона доступности и правил бронирования.
// Инварианты шаблона проверяются здесь, при записи; ядро расчёта слотов
// читает уже валидные данные.
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetWeeklyTemplate возвращает недельный шаблон доступности.
// Отсутствие настройки: пустой шаблон (нигде не доступен), не ошибка.
func (s *Service) GetWeeklyTemplate(ctx context.Context) (domain.WeeklyTemplate, error) {
	raw, err := s.settingsRepo.Get(ctx, settings.KeyWeeklyTemplate)
	if errors.Is(err, settings.ErrKeyNotFound) {
		return domain.WeeklyTemplate{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyTemplate - settings read: %v", ErrInternal, err)
	}

	var byName map[string][]domain.Window
	if err := json.Unmarshal([]byte(raw), &byName); err != nil {
		s.logger.Error("GetWeeklyTemplate: stored template is not valid JSON: %v", err)
		return nil, fmt.Errorf("%w: GetWeeklyTemplate - decode template: %v", ErrInternal, err)
	}

	template := domain.WeeklyTemplate{}
	for day, name := range weekdayNames {
		if windows, ok := byName[name]; ok && len(windows) > 0 {
			template[day] = windows
		}
	}

	return template, nil
}

// GetBookingRules возвращает правила бронирования, читая их заново при каждом
// вызове. Отсутствие настройки: значения по умолчанию.
func (s *Service) GetBookingRules(ctx context.Context) (domain.BookingRules, error) {
	raw, err := s.settingsRepo.Get(ctx, settings.KeyBookingRules)
	if errors.Is(err, settings.ErrKeyNotFound) {
		return domain.DefaultBookingRules(), nil
	}
	if err != nil {
		return domain.BookingRules{}, fmt.Errorf("%w: GetBookingRules - settings read: %v", ErrInternal, err)
	}

	var rules domain.BookingRules
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		s.logger.Error("GetBookingRules: stored rules are not valid JSON: %v", err)
		return domain.BookingRules{}, fmt.Errorf("%w: GetBookingRules - decode rules: %v", ErrInternal, err)
	}

	return rules, nil
}

// UpdateWeeklyTemplate валидирует и сохраняет недельный шаблон
func (s *Service) UpdateWeeklyTemplate(ctx context.Context, template domain.WeeklyTemplate) error {
	byName := make(map[string][]domain.Window, len(template))

	for day, windows := range template {
		if err := validateDayWindows(windows); err != nil {
			return fmt.Errorf("%w (%s)", err, weekdayNames[day])
		}
		if len(windows) > 0 {
			byName[weekdayNames[day]] = windows
		}
	}

	encoded, err := json.Marshal(byName)
	if err != nil {
		return fmt.Errorf("%w: UpdateWeeklyTemplate - encode template: %v", ErrInternal, err)
	}

	if err := s.settingsRepo.Set(ctx, settings.KeyWeeklyTemplate, string(encoded)); err != nil {
		return fmt.Errorf("%w: UpdateWeeklyTemplate - settings write: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWeeklyTemplate: template saved, %d day(s) with windows", len(byName))
	return nil
}

// UpdateBookingRules валидирует и сохраняет правила бронирования
func (s *Service) UpdateBookingRules(ctx context.Context, rules domain.BookingRules) error {
	if !domain.ContainsInt(domain.AllowedBufferMinutes, rules.BufferMinutes) {
		return fmt.Errorf("%w: buffer must be one of %v", ErrInvalidRules, domain.AllowedBufferMinutes)
	}
	if !domain.ContainsInt(domain.AllowedMinNoticeHours, rules.MinNoticeHours) {
		return fmt.Errorf("%w: min notice must be one of %v", ErrInvalidRules, domain.AllowedMinNoticeHours)
	}
	if !domain.ContainsInt(domain.AllowedHorizonDays, rules.HorizonDays) {
		return fmt.Errorf("%w: horizon must be one of %v", ErrInvalidRules, domain.AllowedHorizonDays)
	}

	encoded, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingRules - encode rules: %v", ErrInternal, err)
	}

	if err := s.settingsRepo.Set(ctx, settings.KeyBookingRules, string(encoded)); err != nil {
		return fmt.Errorf("%w: UpdateBookingRules - settings write: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBookingRules: rules saved (buffer=%d, notice=%dh, horizon=%dd)",
		rules.BufferMinutes, rules.MinNoticeHours, rules.HorizonDays)
	return nil
}

// validateDayWindows проверяет инварианты окон одного дня:
// не больше MaxWindowsPerDay, каждое окно start < end, без пересечений
func validateDayWindows(windows []domain.Window) error {
	if len(windows) > domain.MaxWindowsPerDay {
		return ErrTooManyWindows
	}

	for _, w := range windows {
		if err := w.Start.Validate(); err != nil {
			return ErrInvalidWindow
		}
		if err := w.End.Validate(); err != nil {
			return ErrInvalidWindow
		}
		if !w.Start.IsBefore(w.End) {
			return ErrInvalidWindow
		}
	}

	sorted := make([]domain.Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.IsBefore(sorted[j].Start)
	})

	for i := 1; i < len(sorted); i++ {
		// Окна не должны пересекаться; соприкосновение (end == start) допустимо
		if sorted[i].Start.IsBefore(sorted[i-1].End) {
			return ErrOverlappingWindows
		}
	}

	return nil
}
