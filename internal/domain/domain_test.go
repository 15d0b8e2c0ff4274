package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestTripID_isNaturalKey(t *testing.T) {
	in := domain.TripInput{Destination: "Lisbon", StartDate: "2025-06-01", EndDate: "2025-06-10"}

	assert.Equal(t, "Lisbon|2025-06-01|2025-06-10", domain.TripID(in))
	assert.Equal(t, domain.TripID(in), domain.TripID(in))
}

func TestParseSegment(t *testing.T) {
	assert.Equal(t, domain.SegmentGoing, domain.ParseSegment("going"))
	assert.Equal(t, domain.SegmentMid, domain.ParseSegment("mid"))
	assert.Equal(t, domain.SegmentReturn, domain.ParseSegment("return"))
	assert.Equal(t, domain.SegmentAuto, domain.ParseSegment(""))
	assert.Equal(t, domain.SegmentAuto, domain.ParseSegment("outbound"))
}

func TestNewPaginationParams_defaultsAndCap(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, p)

	p = domain.NewPaginationParams(intPtr(3), intPtr(500))
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 100}, p)
	assert.Equal(t, 200, p.Offset())

	p = domain.NewPaginationParams(intPtr(0), intPtr(-1))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, p)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, total := domain.Paginate(items, domain.PaginationParams{Page: 2, Limit: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 5, total)

	page, total = domain.Paginate(items, domain.PaginationParams{Page: 3, Limit: 2})
	assert.Equal(t, []int{5}, page)
	assert.Equal(t, 5, total)

	page, _ = domain.Paginate(items, domain.PaginationParams{Page: 9, Limit: 2})
	require.NotNil(t, page)
	assert.Empty(t, page)
}

func TestStateClone_isDeep(t *testing.T) {
	s := domain.NewState()
	s.Trips = append(s.Trips, domain.Trip{ID: "t1"})
	s.ItineraryByTripID["t1"] = []domain.ItineraryDay{
		{ID: "d1", Label: "Day 1", Events: []domain.ItineraryEvent{{ID: "e1", Name: "Museum"}}},
	}

	c := s.Clone()
	c.Trips[0].Destination = "changed"
	c.ItineraryByTripID["t1"][0].Events[0].Name = "changed"

	assert.Empty(t, s.Trips[0].Destination)
	assert.Equal(t, "Museum", s.ItineraryByTripID["t1"][0].Events[0].Name)
}
