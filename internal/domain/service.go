package domain

import "time"

// Service represents a bookable service offered by the provider
type Service struct {
	ID              int64
	Name            string
	Slug            string
	DurationMinutes int
	Description     string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable returns true if the service can accept new bookings.
// Services are never hard-deleted, only deactivated, so historical bookings
// keep a resolvable service reference.
func (s *Service) IsBookable() bool {
	return s.IsActive
}

// ValidDuration reports whether d is an allowed service duration:
// between 15 and 240 minutes, in 15-minute steps.
func ValidDuration(d int) bool {
	return d >= MinServiceDurationMinutes &&
		d <= MaxServiceDurationMinutes &&
		d%ServiceDurationStepMinutes == 0
}
