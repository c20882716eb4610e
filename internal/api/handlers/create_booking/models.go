package create_booking

import (
	"time"

	createBooking "github.com/meetlane/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64  `json:"serviceId"`
	Date        string `json:"date"` // "2025-10-15"
	Time        string `json:"time"` // "10:00"
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone,omitempty"`
	ClientNotes string `json:"clientNotes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ExternalEventID *string `json:"externalEventId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		ServiceID:   r.ServiceID,
		Date:        r.Date,
		Time:        r.Time,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		ClientNotes: r.ClientNotes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		ClientName:      resp.ClientName,
		ClientEmail:     resp.ClientEmail,
		Date:            resp.Date,
		Time:            resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ExternalEventID: resp.ExternalEventID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
