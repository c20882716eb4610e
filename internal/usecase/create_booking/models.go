package create_booking

import (
	"time"

	"github.com/meetlane/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID   int64  // ID услуги
	Date        string // Дата в формате YYYY-MM-DD (часовой пояс провайдера)
	Time        string // Время начала в формате HH:MM
	ClientName  string // Имя клиента
	ClientEmail string // Email клиента
	ClientPhone string // Телефон клиента (опционально)
	ClientNotes string // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	ServiceID       int64            // ID услуги
	ServiceName     string           // Название услуги (денормализовано)
	ClientName      string           // Имя клиента
	ClientEmail     string           // Email клиента
	Date            string           // Дата бронирования
	StartTime       types.TimeString // Время начала (часовой пояс провайдера)
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	ExternalEventID *string          // ID события внешнего календаря, если записано

	CreatedAt time.Time // Время создания
}
