package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/views"
)

// ItineraryService implements business logic for itinerary days and events.
type ItineraryService struct {
	store ItineraryStore
}

// NewItineraryService constructs an ItineraryService backed by the provided store.
func NewItineraryService(s ItineraryStore) *ItineraryService {
	return &ItineraryService{store: s}
}

// List returns the trip's days in order, each with its events sorted by time.
// Always returns a non-nil slice.
func (s *ItineraryService) List(ctx context.Context, tripID string) ([]domain.ItineraryDay, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	days := s.store.Itinerary(tripID)
	for i := range days {
		days[i].Events = views.SortEvents(days[i].Events)
	}
	return days, nil
}

// AddDay appends a day. A blank label gets a positional "Day N" label.
func (s *ItineraryService) AddDay(ctx context.Context, tripID, label string) (domain.ItineraryDay, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return domain.ItineraryDay{}, fmt.Errorf("service.ItineraryService.AddDay: %w", err)
	}
	return s.store.AddItineraryDay(tripID, label), nil
}

// RenameDay changes a day's label.
// Returns domain.ErrValidation for a blank label, domain.ErrNotFound if the
// trip or day does not exist.
func (s *ItineraryService) RenameDay(ctx context.Context, tripID, dayID, label string) (domain.ItineraryDay, error) {
	if _, err := s.findDay(ctx, tripID, dayID); err != nil {
		return domain.ItineraryDay{}, fmt.Errorf("service.ItineraryService.RenameDay: %w", err)
	}
	if blank(label) {
		return domain.ItineraryDay{}, fmt.Errorf("%w: label is required", domain.ErrValidation)
	}
	s.store.UpdateItineraryDay(tripID, dayID, label)
	day, _ := s.store.Day(tripID, dayID)
	day.Events = views.SortEvents(day.Events)
	return day, nil
}

// DeleteDay removes a day and all of its events.
func (s *ItineraryService) DeleteDay(ctx context.Context, tripID, dayID string) error {
	if _, err := s.findDay(ctx, tripID, dayID); err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteDay: %w", err)
	}
	s.store.DeleteItineraryDay(tripID, dayID)
	return nil
}

// AddEvent validates and adds an event to a day.
// Returns domain.ErrValidation unless name is set and time parses,
// domain.ErrNotFound if the trip or day does not exist.
func (s *ItineraryService) AddEvent(ctx context.Context, tripID, dayID string, in domain.EventInput) (domain.ItineraryEvent, error) {
	if _, err := s.findDay(ctx, tripID, dayID); err != nil {
		return domain.ItineraryEvent{}, fmt.Errorf("service.ItineraryService.AddEvent: %w", err)
	}
	if blank(in.Name) {
		return domain.ItineraryEvent{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validateClock("time", in.Time); err != nil {
		return domain.ItineraryEvent{}, err
	}
	return s.store.AddItineraryEvent(tripID, dayID, in), nil
}

// UpdateEvent applies changes to an event. Blank name or time keep the stored
// values; a blank location clears it.
func (s *ItineraryService) UpdateEvent(ctx context.Context, tripID, dayID, eventID string, in domain.EventInput) (domain.ItineraryEvent, error) {
	day, err := s.findDay(ctx, tripID, dayID)
	if err != nil {
		return domain.ItineraryEvent{}, fmt.Errorf("service.ItineraryService.UpdateEvent: %w", err)
	}
	if _, ok := findEvent(day, eventID); !ok {
		return domain.ItineraryEvent{}, fmt.Errorf("service.ItineraryService.UpdateEvent: event %q: %w", eventID, domain.ErrNotFound)
	}
	if !blank(in.Time) {
		if err := validateClock("time", in.Time); err != nil {
			return domain.ItineraryEvent{}, err
		}
	}
	s.store.UpdateItineraryEvent(tripID, dayID, eventID, in)
	day, _ = s.store.Day(tripID, dayID)
	e, _ := findEvent(day, eventID)
	return e, nil
}

// DeleteEvent removes one event.
func (s *ItineraryService) DeleteEvent(ctx context.Context, tripID, dayID, eventID string) error {
	day, err := s.findDay(ctx, tripID, dayID)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteEvent: %w", err)
	}
	if _, ok := findEvent(day, eventID); !ok {
		return fmt.Errorf("service.ItineraryService.DeleteEvent: event %q: %w", eventID, domain.ErrNotFound)
	}
	s.store.DeleteItineraryEvent(tripID, dayID, eventID)
	return nil
}

func (s *ItineraryService) findDay(ctx context.Context, tripID, dayID string) (domain.ItineraryDay, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return domain.ItineraryDay{}, err
	}
	day, ok := s.store.Day(tripID, dayID)
	if !ok {
		return domain.ItineraryDay{}, fmt.Errorf("day %q: %w", dayID, domain.ErrNotFound)
	}
	return day, nil
}

func findEvent(day domain.ItineraryDay, eventID string) (domain.ItineraryEvent, bool) {
	for _, e := range day.Events {
		if e.ID == eventID {
			return e, true
		}
	}
	return domain.ItineraryEvent{}, false
}
