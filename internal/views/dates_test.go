package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/views"
)

// now is Friday 14 March 2025, 09:30 UTC.
var now = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func TestParseTripDate(t *testing.T) {
	got, ok := views.ParseTripDate("2025-06-01", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)

	got, ok = views.ParseTripDate("2025-06-01T22:10:00Z", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got, "date prefix wins over the time part")

	_, ok = views.ParseTripDate("next tuesday", time.UTC)
	assert.False(t, ok)
	_, ok = views.ParseTripDate("", time.UTC)
	assert.False(t, ok)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in       string
		hour     int
		minute   int
		expectOK bool
	}{
		{"9:05 AM", 9, 5, true},
		{"12:00 am", 0, 0, true},
		{"12:15 PM", 12, 15, true},
		{"7:45pm", 19, 45, true},
		{"23:59", 23, 59, true},
		{"7:30", 7, 30, true},
		{" 08:00 ", 8, 0, true},
		{"24:00", 0, 0, false},
		{"noon", 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			h, m, ok := views.ParseClock(tc.in)
			assert.Equal(t, tc.expectOK, ok)
			assert.Equal(t, tc.hour, h)
			assert.Equal(t, tc.minute, m)
		})
	}
}

func TestParseFlightDateTime(t *testing.T) {
	got, ok := views.ParseFlightDateTime("2025-06-01", "6:40 PM", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 18, 40, 0, 0, time.UTC), got)

	_, ok = views.ParseFlightDateTime("2025-06-01", "evening", time.UTC)
	assert.False(t, ok)
	_, ok = views.ParseFlightDateTime("", "10:00", time.UTC)
	assert.False(t, ok)
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 1, views.DaysUntil("2025-03-15", now))
	assert.Equal(t, 0, views.DaysUntil("2025-03-14", now))
	assert.Equal(t, 0, views.DaysUntil("2025-03-01", now), "never negative")
	assert.Equal(t, 18, views.DaysUntil("2025-04-01", now))
	assert.Equal(t, 0, views.DaysUntil("soon", now))
}
