package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/views"
)

func trip(id, start, end string) domain.Trip {
	return domain.Trip{ID: id, Destination: id, StartDate: start, EndDate: end}
}

func tripIDs(trips []domain.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = t.ID
	}
	return out
}

func TestIsPast_boundaryIsToday(t *testing.T) {
	assert.True(t, views.IsPast(trip("yesterday", "2025-03-01", "2025-03-13"), now))
	assert.False(t, views.IsPast(trip("today", "2025-03-01", "2025-03-14"), now))
	assert.False(t, views.IsPast(trip("tomorrow", "2025-03-01", "2025-03-15"), now))
	assert.True(t, views.IsPast(trip("broken", "x", "y"), now), "unparseable end falls back to the epoch")
}

func TestBucketTrips(t *testing.T) {
	trips := []domain.Trip{
		trip("old", "2024-01-01", "2024-01-10"),
		trip("summer", "2025-07-01", "2025-07-14"),
		trip("ongoing", "2025-03-10", "2025-03-20"),
		trip("recent", "2025-02-01", "2025-03-13"),
		trip("spring", "2025-04-01", "2025-04-05"),
	}

	b := views.BucketTrips(trips, now)

	assert.Equal(t, []string{"ongoing", "spring", "summer"}, tripIDs(b.Upcoming))
	assert.Equal(t, []string{"recent", "old"}, tripIDs(b.Past))
}

func TestBucketTrips_empty(t *testing.T) {
	b := views.BucketTrips(nil, now)

	assert.NotNil(t, b.Upcoming)
	assert.NotNil(t, b.Past)
	assert.Empty(t, b.Upcoming)
	assert.Empty(t, b.Past)
}
