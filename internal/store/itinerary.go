package store

import (
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// AddItineraryDay appends a day. A blank label becomes "Day N", N being the
// position the day will take.
func (s *Store) AddItineraryDay(tripID, label string) domain.ItineraryDay {
	day := domain.ItineraryDay{
		ID:     s.newID(),
		Label:  strings.TrimSpace(label),
		Events: []domain.ItineraryEvent{},
	}

	s.mutate(func(st *domain.State) bool {
		days := st.ItineraryByTripID[tripID]
		if day.Label == "" {
			day.Label = fmt.Sprintf("Day %d", len(days)+1)
		}
		st.ItineraryByTripID[tripID] = append(days, day)
		return true
	})
	return day
}

// UpdateItineraryDay relabels a day. A blank label changes nothing.
func (s *Store) UpdateItineraryDay(tripID, dayID, label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	s.mutate(func(st *domain.State) bool {
		day := findDay(st, tripID, dayID)
		if day == nil {
			return false
		}
		day.Label = label
		return true
	})
}

// DeleteItineraryDay removes a day together with its events.
func (s *Store) DeleteItineraryDay(tripID, dayID string) {
	s.mutate(func(st *domain.State) bool {
		days, ok := st.ItineraryByTripID[tripID]
		if !ok {
			return false
		}
		out, removed := without(days, func(d domain.ItineraryDay) bool { return d.ID == dayID })
		st.ItineraryByTripID[tripID] = out
		return removed
	})
}

// AddItineraryEvent appends an event to a day. The event is returned even
// when the day does not exist, in which case nothing is stored.
func (s *Store) AddItineraryEvent(tripID, dayID string, in domain.EventInput) domain.ItineraryEvent {
	event := domain.ItineraryEvent{
		ID:       s.newID(),
		Name:     strings.TrimSpace(in.Name),
		Time:     strings.TrimSpace(in.Time),
		Location: strings.TrimSpace(in.Location),
	}

	s.mutate(func(st *domain.State) bool {
		day := findDay(st, tripID, dayID)
		if day == nil {
			return false
		}
		day.Events = append(day.Events, event)
		return true
	})
	return event
}

// UpdateItineraryEvent edits an event. Blank name or time keep their previous
// values; a blank location clears it.
func (s *Store) UpdateItineraryEvent(tripID, dayID, eventID string, in domain.EventInput) {
	s.mutate(func(st *domain.State) bool {
		day := findDay(st, tripID, dayID)
		if day == nil {
			return false
		}
		for i := range day.Events {
			e := &day.Events[i]
			if e.ID != eventID {
				continue
			}
			e.Name = keep(e.Name, in.Name)
			e.Time = keep(e.Time, in.Time)
			e.Location = strings.TrimSpace(in.Location)
			return true
		}
		return false
	})
}

// DeleteItineraryEvent removes one event from a day.
func (s *Store) DeleteItineraryEvent(tripID, dayID, eventID string) {
	s.mutate(func(st *domain.State) bool {
		day := findDay(st, tripID, dayID)
		if day == nil {
			return false
		}
		out, removed := without(day.Events, func(e domain.ItineraryEvent) bool { return e.ID == eventID })
		day.Events = out
		return removed
	})
}

// Itinerary returns the trip's days in insertion order. Events are in
// insertion order too; see views.SortEvents for display order.
func (s *Store) Itinerary(tripID string) []domain.ItineraryDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	days := domain.CloneDays(s.state.ItineraryByTripID[tripID])
	if days == nil {
		days = []domain.ItineraryDay{}
	}
	return days
}

// Day returns one itinerary day with its events.
func (s *Store) Day(tripID, dayID string) (domain.ItineraryDay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := findDay(&s.state, tripID, dayID)
	if day == nil {
		return domain.ItineraryDay{}, false
	}
	return domain.CloneDays([]domain.ItineraryDay{*day})[0], true
}

func findDay(st *domain.State, tripID, dayID string) *domain.ItineraryDay {
	days := st.ItineraryByTripID[tripID]
	for i := range days {
		if days[i].ID == dayID {
			return &days[i]
		}
	}
	return nil
}
