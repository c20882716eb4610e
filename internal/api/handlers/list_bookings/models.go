package list_bookings

import (
	"time"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/pkg/types"
)

// BookingItem элемент списка бронирований
type BookingItem struct {
	ID              int64  `json:"id"`
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// ListBookingsResponse HTTP response model
type ListBookingsResponse struct {
	From     string        `json:"from"`
	To       string        `json:"to"`
	Bookings []BookingItem `json:"bookings"`
}

// FromDomain конвертирует список бронирований в HTTP response
func FromDomain(from, to string, list []*domain.Booking) *ListBookingsResponse {
	items := make([]BookingItem, 0, len(list))
	for _, b := range list {
		loc, err := time.LoadLocation(b.ProviderTimezone)
		if err != nil {
			loc = time.UTC
		}
		startLocal := b.StartUTC.In(loc)

		items = append(items, BookingItem{
			ID:              b.ID,
			ServiceID:       b.ServiceID,
			ServiceName:     b.ServiceName,
			ClientName:      b.ClientName,
			ClientEmail:     b.ClientEmail,
			Date:            startLocal.Format(types.DateFormat),
			Time:            types.NewTimeString(startLocal).String(),
			DurationMinutes: b.DurationMinutes,
			Status:          string(b.Status),
		})
	}

	return &ListBookingsResponse{
		From:     from,
		To:       to,
		Bookings: items,
	}
}
