package get_available_slots

import (
	"github.com/meetlane/booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date      string // Дата в формате YYYY-MM-DD (часовой пояс провайдера)
	ServiceID int64  // ID услуги
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            string             // Дата, на которую запрашивались слоты
	ServiceID       int64              // ID услуги
	DurationMinutes int                // Длительность услуги в минутах
	Slots           []types.TimeString // Времена начала доступных слотов, по порядку
}
