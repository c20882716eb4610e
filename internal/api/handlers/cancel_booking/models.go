package cancel_booking

import (
	cancelBooking "github.com/meetlane/booking-service/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID        int64  `json:"bookingId"`
	Status           string `json:"status"`
	AlreadyCancelled bool   `json:"alreadyCancelled,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:        resp.BookingID,
		Status:           resp.Status,
		AlreadyCancelled: resp.AlreadyCancelled,
	}
}
