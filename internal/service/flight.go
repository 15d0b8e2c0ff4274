package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/flightlookup"
	"github.com/pkordes/trip-planner/backend/internal/views"
)

// FlightLookup resolves flight details from a schedule service.
// *flightlookup.Client implements it.
type FlightLookup interface {
	Lookup(ctx context.Context, q flightlookup.Query) (flightlookup.Result, error)
}

// FlightView is a flight with its effective segment resolved.
type FlightView struct {
	domain.FlightInfo
	EffectiveSegment domain.Segment `json:"effectiveSegment"`
}

// FlightList is a trip's flights in display order plus the overview derived
// from them.
type FlightList struct {
	Flights       []FlightView        `json:"flights"`
	Groups        views.SegmentGroups `json:"groups"`
	CountdownDate string              `json:"countdownDate"`
	DaysUntil     int                 `json:"daysUntil"`
}

// FlightService implements business logic for Flight operations.
type FlightService struct {
	store  FlightStore
	lookup FlightLookup
	now    func() time.Time
}

// NewFlightService constructs a FlightService. lookup may be nil, in which
// case Lookup reports flightlookup.ErrDisabled.
func NewFlightService(s FlightStore, lookup FlightLookup, now func() time.Time) *FlightService {
	return &FlightService{store: s, lookup: lookup, now: now}
}

// List returns the trip's flights, upcoming first, with segments and the
// countdown to the first departure.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *FlightService) List(ctx context.Context, tripID string) (FlightList, error) {
	trip, err := requireTrip(ctx, s.store, tripID)
	if err != nil {
		return FlightList{}, fmt.Errorf("service.FlightService.List: %w", err)
	}

	now := s.now()
	sorted := views.SortFlightsForDisplay(s.store.Flights(tripID), now)
	out := FlightList{
		Flights: make([]FlightView, len(sorted)),
		Groups:  views.GroupBySegment(trip, sorted, now.Location()),
	}
	for i, f := range sorted {
		out.Flights[i] = FlightView{FlightInfo: f, EffectiveSegment: views.EffectiveSegment(trip, f, now.Location())}
	}
	out.CountdownDate = views.CountdownDate(trip, sorted, now)
	out.DaysUntil = views.DaysUntil(out.CountdownDate, now)
	return out, nil
}

// Create validates and adds a flight to the trip.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip does not exist.
func (s *FlightService) Create(ctx context.Context, tripID string, in domain.FlightInput) (domain.FlightInfo, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return domain.FlightInfo{}, fmt.Errorf("service.FlightService.Create: %w", err)
	}
	if blank(in.DepartureDate) || blank(in.DepartureTime) {
		return domain.FlightInfo{}, fmt.Errorf("%w: departureDate and departureTime are required", domain.ErrValidation)
	}
	if err := validateFlight(in); err != nil {
		return domain.FlightInfo{}, err
	}
	return s.store.AddFlight(tripID, in), nil
}

// Update validates and applies changes to a flight. A blank departure date
// or time keeps the stored value.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip or flight does not exist.
func (s *FlightService) Update(ctx context.Context, tripID, flightID string, in domain.FlightInput) (domain.FlightInfo, error) {
	if _, err := s.find(ctx, tripID, flightID); err != nil {
		return domain.FlightInfo{}, fmt.Errorf("service.FlightService.Update: %w", err)
	}
	if err := validateFlight(in); err != nil {
		return domain.FlightInfo{}, err
	}
	s.store.UpdateFlight(tripID, flightID, in)
	f, _ := s.store.Flight(tripID, flightID)
	return f, nil
}

// Delete removes a flight.
// Returns domain.ErrNotFound if the trip or flight does not exist.
func (s *FlightService) Delete(ctx context.Context, tripID, flightID string) error {
	if _, err := s.find(ctx, tripID, flightID); err != nil {
		return fmt.Errorf("service.FlightService.Delete: %w", err)
	}
	s.store.DeleteFlight(tripID, flightID)
	return nil
}

// Clear removes every flight of the trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *FlightService) Clear(ctx context.Context, tripID string) error {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return fmt.Errorf("service.FlightService.Clear: %w", err)
	}
	s.store.ClearFlights(tripID)
	return nil
}

// Lookup fetches schedule details for a flight. Nothing is stored; callers
// review the result and submit it through Create.
func (s *FlightService) Lookup(ctx context.Context, q flightlookup.Query) (flightlookup.Result, error) {
	if s.lookup == nil {
		return flightlookup.Result{}, flightlookup.ErrDisabled
	}
	res, err := s.lookup.Lookup(ctx, q)
	if err != nil {
		return flightlookup.Result{}, fmt.Errorf("service.FlightService.Lookup: %w", err)
	}
	return res, nil
}

func (s *FlightService) find(ctx context.Context, tripID, flightID string) (domain.FlightInfo, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return domain.FlightInfo{}, err
	}
	f, ok := s.store.Flight(tripID, flightID)
	if !ok {
		return domain.FlightInfo{}, fmt.Errorf("flight %q: %w", flightID, domain.ErrNotFound)
	}
	return f, nil
}

// validateFlight checks the format of every non-blank date and time field.
func validateFlight(in domain.FlightInput) error {
	switch in.Segment {
	case "", domain.SegmentAuto, domain.SegmentGoing, domain.SegmentMid, domain.SegmentReturn:
	default:
		return fmt.Errorf("%w: segment must be auto, going, mid or return", domain.ErrValidation)
	}
	for _, d := range []struct{ field, value string }{
		{"departureDate", in.DepartureDate},
		{"arrivalDate", in.ArrivalDate},
	} {
		if !blank(d.value) {
			if err := validateDate(d.field, trimmed(d.value)); err != nil {
				return err
			}
		}
	}
	for _, c := range []struct{ field, value string }{
		{"departureTime", in.DepartureTime},
		{"arrivalTime", in.ArrivalTime},
	} {
		if !blank(c.value) {
			if err := validateClock(c.field, c.value); err != nil {
				return err
			}
		}
	}
	return nil
}
