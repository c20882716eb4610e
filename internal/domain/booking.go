package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed client appointment.
//
// StartUTC is always stored in UTC. ProviderTimezone is the IANA name of the
// provider-side timezone captured at creation time, so historical bookings
// render correctly even if the configured timezone changes later.
type Booking struct {
	ID               int64
	ServiceID        int64
	ClientName       string
	ClientEmail      string
	ClientPhone      string
	ClientNotes      string
	StartUTC         time.Time
	DurationMinutes  int
	ProviderTimezone string
	Status           BookingStatus
	ExternalEventID  *string

	// Denormalized for notifications and history
	ServiceName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndUTC returns the exclusive end instant of the booking interval.
func (b *Booking) EndUTC() time.Time {
	return b.StartUTC.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsConfirmed returns true if the booking occupies its slot.
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BookingSnapshot is the full booking state handed to the notification sink.
type BookingSnapshot struct {
	BookingID        int64
	ServiceID        int64
	ServiceName      string
	ClientName       string
	ClientEmail      string
	ClientPhone      string
	ClientNotes      string
	StartUTC         time.Time
	DurationMinutes  int
	ProviderTimezone string
	ExternalEventID  string
}
