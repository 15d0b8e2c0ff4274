package views

import (
	"slices"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Buckets splits trips into those still ahead (or in progress) and those
// already over.
type Buckets struct {
	Upcoming []domain.Trip `json:"upcoming"`
	Past     []domain.Trip `json:"past"`
}

// IsPast reports whether the trip ended before today. A trip ending today is
// still upcoming. Unparseable end dates fall back to the Unix epoch.
func IsPast(trip domain.Trip, now time.Time) bool {
	return dayOrEpoch(trip.EndDate, now.Location()).Before(startOfDay(now))
}

// BucketTrips sorts upcoming trips by start date ascending and past trips by
// end date descending, so the most recently finished trip comes first.
func BucketTrips(trips []domain.Trip, now time.Time) Buckets {
	loc := now.Location()
	b := Buckets{Upcoming: []domain.Trip{}, Past: []domain.Trip{}}
	for _, t := range trips {
		if IsPast(t, now) {
			b.Past = append(b.Past, t)
		} else {
			b.Upcoming = append(b.Upcoming, t)
		}
	}

	slices.SortStableFunc(b.Upcoming, func(x, y domain.Trip) int {
		return dayOrEpoch(x.StartDate, loc).Compare(dayOrEpoch(y.StartDate, loc))
	})
	slices.SortStableFunc(b.Past, func(x, y domain.Trip) int {
		return dayOrEpoch(y.EndDate, loc).Compare(dayOrEpoch(x.EndDate, loc))
	})
	return b
}

func dayOrEpoch(value string, loc *time.Location) time.Time {
	if t, ok := ParseTripDay(value, loc); ok {
		return t
	}
	return time.Unix(0, 0).In(loc)
}
