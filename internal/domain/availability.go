package domain

import (
	"time"

	"github.com/meetlane/booking-service/pkg/types"
)

// Window is one availability window within a day, wall-clock in the provider
// timezone. Start must be strictly before End.
type Window struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WeeklyTemplate maps a weekday to its ordered availability windows.
// Invariants (enforced at write time by the availability service, assumed
// valid on read): at most MaxWindowsPerDay windows per day, each start < end,
// windows within a day non-overlapping.
type WeeklyTemplate map[time.Weekday][]Window

// WindowsFor returns the windows for the weekday of the given date.
func (t WeeklyTemplate) WindowsFor(date time.Time) []Window {
	return t[date.Weekday()]
}

// BookingRules is the immutable per-computation snapshot of booking policy.
type BookingRules struct {
	BufferMinutes  int `json:"bufferMinutes"`
	MinNoticeHours int `json:"minNoticeHours"`
	HorizonDays    int `json:"horizonDays"`
}

// Allowed value sets for booking rules.
var (
	AllowedBufferMinutes  = []int{15, 30, 45, 60}
	AllowedMinNoticeHours = []int{1, 2, 4, 8, 24}
	AllowedHorizonDays    = []int{14, 30, 60, 90}
)

// DefaultBookingRules returns the rules used until the provider configures
// their own.
func DefaultBookingRules() BookingRules {
	return BookingRules{
		BufferMinutes:  DefaultBufferMinutes,
		MinNoticeHours: DefaultMinNoticeHours,
		HorizonDays:    DefaultHorizonDays,
	}
}

// ContainsInt reports whether v is in allowed.
func ContainsInt(allowed []int, v int) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
