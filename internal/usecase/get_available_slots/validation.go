package get_available_slots

import (
	"fmt"
	"time"

	"github.com/meetlane/booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(day, now time.Time) bool {
	return day.Before(types.Midnight(now))
}

// isBeyondHorizon проверяет, что дата дальше горизонта бронирования
func isBeyondHorizon(day, now time.Time, horizonDays int) bool {
	return day.After(types.Midnight(now).AddDate(0, 0, horizonDays))
}
