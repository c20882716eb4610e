package get_booking

import (
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/pkg/types"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     string  `json:"clientPhone,omitempty"`
	ClientNotes     string  `json:"clientNotes,omitempty"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"durationMinutes"`
	Timezone        string  `json:"timezone"`
	Status          string  `json:"status"`
	ExternalEventID *string `json:"externalEventId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromDomain конвертирует бронирование в HTTP response.
// Дата и время отдаются в часовом поясе провайдера, зафиксированном
// при создании бронирования.
func FromDomain(b *domain.Booking) *BookingResponse {
	loc, err := time.LoadLocation(b.ProviderTimezone)
	if err != nil {
		loc = time.UTC
	}
	startLocal := b.StartUTC.In(loc)

	return &BookingResponse{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		ClientNotes:     b.ClientNotes,
		Date:            startLocal.Format(types.DateFormat),
		Time:            types.NewTimeString(startLocal).String(),
		DurationMinutes: b.DurationMinutes,
		Timezone:        b.ProviderTimezone,
		Status:          string(b.Status),
		ExternalEventID: b.ExternalEventID,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}
