package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/pkg/types"
)

// validateRequest валидирует входные данные и возвращает разобранные
// дату и время. Каждый вид ошибки различим для вызывающего.
func validateRequest(req *Request, loc *time.Location) (day time.Time, startTime types.TimeString, err error) {
	// 1. Обязательные поля
	if strings.TrimSpace(req.ClientName) == "" ||
		strings.TrimSpace(req.ClientEmail) == "" ||
		req.Date == "" || req.Time == "" || req.ServiceID <= 0 {
		return time.Time{}, "", ErrMissingFields
	}

	// 2. Email
	if _, mailErr := mail.ParseAddress(req.ClientEmail); mailErr != nil {
		return time.Time{}, "", ErrInvalidEmail
	}

	// 3. Дата: строгий формат и реальная календарная дата
	day, dateErr := types.ParseDate(req.Date, loc)
	if dateErr != nil {
		return time.Time{}, "", ErrInvalidDate
	}

	// 4. Время: HH:MM, час <= 23, минута <= 59
	startTime, timeErr := types.NewTimeStringFromString(req.Time)
	if timeErr != nil {
		return time.Time{}, "", ErrInvalidTime
	}

	// 5. Заметки ограничены по длине
	if len(req.ClientNotes) > domain.MaxNotesLength {
		return time.Time{}, "", fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return day, startTime, nil
}

// slotListed проверяет, что запрошенное время есть в свежем списке слотов
func slotListed(requested types.TimeString, slots []types.TimeString) bool {
	for _, slot := range slots {
		if slot == requested {
			return true
		}
	}
	return false
}
