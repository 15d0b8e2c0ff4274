package domain

// State is the complete normalized document for one user: the trip list plus
// one mapping per child collection, keyed by trip ID.
type State struct {
	Trips             []Trip
	FlightsByTripID   map[string][]FlightInfo
	ItineraryByTripID map[string][]ItineraryDay
	ExpensesByTripID  map[string][]TripExpense
	JournalByTripID   map[string][]JournalEntry
}

// NewState returns an empty State with all collections allocated.
func NewState() State {
	return State{
		Trips:             []Trip{},
		FlightsByTripID:   map[string][]FlightInfo{},
		ItineraryByTripID: map[string][]ItineraryDay{},
		ExpensesByTripID:  map[string][]TripExpense{},
		JournalByTripID:   map[string][]JournalEntry{},
	}
}

// Clone returns a deep copy so callers can never mutate store-owned slices.
func (s State) Clone() State {
	out := NewState()
	out.Trips = append(out.Trips, s.Trips...)
	for id, flights := range s.FlightsByTripID {
		out.FlightsByTripID[id] = append([]FlightInfo(nil), flights...)
	}
	for id, days := range s.ItineraryByTripID {
		out.ItineraryByTripID[id] = CloneDays(days)
	}
	for id, expenses := range s.ExpensesByTripID {
		out.ExpensesByTripID[id] = append([]TripExpense(nil), expenses...)
	}
	for id, entries := range s.JournalByTripID {
		out.JournalByTripID[id] = append([]JournalEntry(nil), entries...)
	}
	return out
}

// CloneDays deep-copies itinerary days including their event slices.
func CloneDays(days []ItineraryDay) []ItineraryDay {
	if days == nil {
		return nil
	}
	out := make([]ItineraryDay, len(days))
	for i, d := range days {
		out[i] = d
		out[i].Events = append([]ItineraryEvent{}, d.Events...)
	}
	return out
}
