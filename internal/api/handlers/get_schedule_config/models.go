package get_schedule_config

import (
	"time"

	"github.com/meetlane/booking-service/internal/domain"
)

// dayNames: порядок и имена дней в HTTP-модели
var dayNames = []struct {
	day  time.Weekday
	name string
}{
	{time.Monday, "monday"},
	{time.Tuesday, "tuesday"},
	{time.Wednesday, "wednesday"},
	{time.Thursday, "thursday"},
	{time.Friday, "friday"},
	{time.Saturday, "saturday"},
	{time.Sunday, "sunday"},
}

// WindowModel HTTP-модель окна доступности
type WindowModel struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ScheduleConfigResponse HTTP response model
type ScheduleConfigResponse struct {
	WeeklyTemplate map[string][]WindowModel `json:"weeklyTemplate"`
	BookingRules   domain.BookingRules      `json:"bookingRules"`
}

// FromDomain конвертирует шаблон и правила в HTTP response.
// Все семь дней присутствуют в ответе; день без окон: пустой список.
func FromDomain(template domain.WeeklyTemplate, rules domain.BookingRules) *ScheduleConfigResponse {
	byName := make(map[string][]WindowModel, len(dayNames))
	for _, d := range dayNames {
		windows := make([]WindowModel, 0, len(template[d.day]))
		for _, w := range template[d.day] {
			windows = append(windows, WindowModel{Start: w.Start.String(), End: w.End.String()})
		}
		byName[d.name] = windows
	}

	return &ScheduleConfigResponse{
		WeeklyTemplate: byName,
		BookingRules:   rules,
	}
}
