package store

import (
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// AddTrip inserts a trip keyed by its content. Adding a trip that already
// exists returns the stored record and changes nothing; new trips go to the
// front of the list.
func (s *Store) AddTrip(in domain.TripInput) domain.Trip {
	trip := domain.Trip{
		ID:          domain.TripID(in),
		Destination: in.Destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}

	s.mutate(func(st *domain.State) bool {
		for _, t := range st.Trips {
			if t.ID == trip.ID {
				trip = t
				return false
			}
		}
		st.Trips = append([]domain.Trip{trip}, st.Trips...)
		return true
	})
	return trip
}

// Trips returns every trip, most recently added first.
func (s *Store) Trips() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Trip{}, s.state.Trips...)
}

// Trip returns the trip with id.
func (s *Store) Trip(id string) (domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.Trips {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Trip{}, false
}
