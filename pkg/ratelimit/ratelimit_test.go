package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l := New(3, time.Hour)

	require.True(t, l.Allow("1.2.3.4"))
	require.True(t, l.Allow("1.2.3.4"))
	require.True(t, l.Allow("1.2.3.4"))
	require.False(t, l.Allow("1.2.3.4"))
	require.False(t, l.Allow("1.2.3.4"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(1, time.Hour)

	require.True(t, l.Allow("1.2.3.4"))
	require.False(t, l.Allow("1.2.3.4"))
	require.True(t, l.Allow("5.6.7.8"))
}

func TestLimiter_WindowExpiryResetsCounter(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := New(2, time.Hour)
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("1.2.3.4"))
	require.True(t, l.Allow("1.2.3.4"))
	require.False(t, l.Allow("1.2.3.4"))

	now = now.Add(time.Hour)
	require.True(t, l.Allow("1.2.3.4"))
}

func TestLimiter_RejectedAttemptsDoNotExtendWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := New(1, time.Hour)
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("1.2.3.4"))

	// Отказы в течение окна не сдвигают его начало
	for i := 0; i < 5; i++ {
		now = now.Add(10 * time.Minute)
		require.False(t, l.Allow("1.2.3.4"))
	}

	// Окно истекает через час после первой попытки, а не после последней
	now = now.Add(10 * time.Minute)
	require.True(t, l.Allow("1.2.3.4"))
}
