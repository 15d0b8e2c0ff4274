package store

import (
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// AddFlight appends a flight to the trip. Strings are trimmed and blank
// optional fields are dropped; departure date and time are stored trimmed
// even when blank, callers validate them.
func (s *Store) AddFlight(tripID string, in domain.FlightInput) domain.FlightInfo {
	flight := domain.FlightInfo{
		ID:            s.newID(),
		Segment:       domain.ParseSegment(string(in.Segment)),
		DepartureDate: strings.TrimSpace(in.DepartureDate),
		DepartureTime: strings.TrimSpace(in.DepartureTime),
	}
	applyOptionalFlightFields(&flight, in)

	s.mutate(func(st *domain.State) bool {
		st.FlightsByTripID[tripID] = append(st.FlightsByTripID[tripID], flight)
		return true
	})
	return flight
}

// UpdateFlight replaces a flight's fields. A departure date or time that is
// blank after trimming keeps its previous value; optional fields follow the
// input, so blank clears them.
func (s *Store) UpdateFlight(tripID, flightID string, in domain.FlightInput) {
	s.mutate(func(st *domain.State) bool {
		flights := st.FlightsByTripID[tripID]
		for i := range flights {
			if flights[i].ID != flightID {
				continue
			}
			next := domain.FlightInfo{
				ID:            flightID,
				Segment:       domain.ParseSegment(string(in.Segment)),
				DepartureDate: keep(flights[i].DepartureDate, in.DepartureDate),
				DepartureTime: keep(flights[i].DepartureTime, in.DepartureTime),
			}
			applyOptionalFlightFields(&next, in)
			flights[i] = next
			return true
		}
		return false
	})
}

// DeleteFlight removes one flight.
func (s *Store) DeleteFlight(tripID, flightID string) {
	s.mutate(func(st *domain.State) bool {
		flights, ok := st.FlightsByTripID[tripID]
		if !ok {
			return false
		}
		out, removed := without(flights, func(f domain.FlightInfo) bool { return f.ID == flightID })
		st.FlightsByTripID[tripID] = out
		return removed
	})
}

// ClearFlights removes every flight of the trip.
func (s *Store) ClearFlights(tripID string) {
	s.mutate(func(st *domain.State) bool {
		if _, ok := st.FlightsByTripID[tripID]; !ok {
			return false
		}
		st.FlightsByTripID[tripID] = []domain.FlightInfo{}
		return true
	})
}

// Flights returns the trip's flights in insertion order.
func (s *Store) Flights(tripID string) []domain.FlightInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.FlightInfo{}, s.state.FlightsByTripID[tripID]...)
}

// Flight returns one flight of the trip.
func (s *Store) Flight(tripID, flightID string) (domain.FlightInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.state.FlightsByTripID[tripID] {
		if f.ID == flightID {
			return f, true
		}
	}
	return domain.FlightInfo{}, false
}

func applyOptionalFlightFields(f *domain.FlightInfo, in domain.FlightInput) {
	f.ArrivalDate = strings.TrimSpace(in.ArrivalDate)
	f.ArrivalTime = strings.TrimSpace(in.ArrivalTime)
	f.Airline = strings.TrimSpace(in.Airline)
	f.FlightNumber = strings.TrimSpace(in.FlightNumber)
	f.From = strings.TrimSpace(in.From)
	f.FromCity = strings.TrimSpace(in.FromCity)
	f.To = strings.TrimSpace(in.To)
	f.ToCity = strings.TrimSpace(in.ToCity)
}

// keep returns next trimmed, or prev when next is blank.
func keep(prev, next string) string {
	if t := strings.TrimSpace(next); t != "" {
		return t
	}
	return prev
}

// without returns items minus every element matching drop, and whether
// anything was dropped.
func without[T any](items []T, drop func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out, len(out) != len(items)
}
