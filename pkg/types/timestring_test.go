package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "12:00"}
	for _, s := range valid {
		require.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "ab:cd", "12-30", "12:3", "112:30"}
	for _, s := range invalid {
		require.ErrorIs(t, TimeString(s).Validate(), ErrInvalidTimeString, s)
	}
}

func TestNewTimeStringFromString_RejectsInvalid(t *testing.T) {
	_, err := NewTimeStringFromString("25:00")
	require.ErrorIs(t, err, ErrInvalidTimeString)

	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	require.Equal(t, TimeString("09:30"), ts)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	require.Equal(t, 570, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	require.Equal(t, 0, m)
}

func TestTimeString_AddMinutesWrapsWithinDay(t *testing.T) {
	got, err := TimeString("23:45").AddMinutes(30)
	require.NoError(t, err)
	require.Equal(t, TimeString("00:15"), got)

	got, err = TimeString("00:15").AddMinutes(-30)
	require.NoError(t, err)
	require.Equal(t, TimeString("23:45"), got)
}

func TestTimeString_At(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	got, err := TimeString("09:30").At(day, loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 10, 9, 30, 0, 0, loc), got)
	require.Equal(t, time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC), got.UTC())
}

func TestTimeString_Ordering(t *testing.T) {
	require.True(t, TimeString("09:00").IsBefore("09:30"))
	require.False(t, TimeString("09:30").IsBefore("09:30"))
	require.True(t, TimeString("10:00").IsAfter("09:30"))
	require.False(t, TimeString("09:30").IsAfter("09:30"))
}

func TestNewTimeString_FromWallClock(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 10, 14, 5, 59, 0, time.UTC))
	require.Equal(t, TimeString("14:05"), ts)
}
