package update_schedule_config

import (
	"fmt"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/pkg/types"
)

// weekdayByName: обратное отображение имен дней HTTP-модели
var weekdayByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// WindowModel HTTP-модель окна доступности
type WindowModel struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpdateScheduleRequest HTTP request model.
// Каждая секция опциональна: присутствующая заменяет сохраненное целиком.
type UpdateScheduleRequest struct {
	WeeklyTemplate map[string][]WindowModel `json:"weeklyTemplate,omitempty"`
	BookingRules   *domain.BookingRules     `json:"bookingRules,omitempty"`
}

// ToTemplate конвертирует HTTP-модель шаблона в доменную
func (r *UpdateScheduleRequest) ToTemplate() (domain.WeeklyTemplate, error) {
	template := domain.WeeklyTemplate{}

	for name, windows := range r.WeeklyTemplate {
		day, ok := weekdayByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown day %q", name)
		}

		converted := make([]domain.Window, 0, len(windows))
		for _, w := range windows {
			start, err := types.NewTimeStringFromString(w.Start)
			if err != nil {
				return nil, fmt.Errorf("%s: bad window start %q", name, w.Start)
			}
			end, err := types.NewTimeStringFromString(w.End)
			if err != nil {
				return nil, fmt.Errorf("%s: bad window end %q", name, w.End)
			}
			converted = append(converted, domain.Window{Start: start, End: end})
		}

		if len(converted) > 0 {
			template[day] = converted
		}
	}

	return template, nil
}
