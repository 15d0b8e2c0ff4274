// Package service contains the business logic of the trip planner API.
// Services validate caller input, check that parents exist, and compose the
// derived views. The store underneath is deliberately lenient; strict
// validation lives here.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/views"
)

// Trip list buckets accepted by TripService.List.
const (
	BucketAll      = ""
	BucketUpcoming = "upcoming"
	BucketPast     = "past"
)

// TripSummary is a trip together with its countdown.
type TripSummary struct {
	domain.Trip
	Past      bool `json:"past"`
	DaysUntil int  `json:"daysUntil"`
}

// TripService implements business logic for Trip operations.
type TripService struct {
	store TripStore
	now   func() time.Time
}

// NewTripService constructs a TripService backed by the provided store.
// now supplies the current time for bucketing and countdowns.
func NewTripService(s TripStore, now func() time.Time) *TripService {
	return &TripService{store: s, now: now}
}

// Create validates and adds a trip. Adding a trip identical to an existing
// one returns the existing trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, in domain.TripInput) (TripSummary, error) {
	if err := ready(ctx, s.store); err != nil {
		return TripSummary{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	in.Destination = strings.TrimSpace(in.Destination)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	if err := validateTrip(in); err != nil {
		return TripSummary{}, err
	}
	return s.summarize(s.store.AddTrip(in)), nil
}

// Get returns a single trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Get(ctx context.Context, id string) (TripSummary, error) {
	trip, err := requireTrip(ctx, s.store, id)
	if err != nil {
		return TripSummary{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return s.summarize(trip), nil
}

// List returns a page of trips. Upcoming trips come first, soonest first,
// followed by past trips, most recently ended first. bucket narrows the list
// to one of the two groups.
// Returns domain.ErrValidation for an unknown bucket.
func (s *TripService) List(ctx context.Context, bucket string, p domain.PaginationParams) ([]TripSummary, int, error) {
	if err := ready(ctx, s.store); err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}

	b := views.BucketTrips(s.store.Trips(), s.now())
	var trips []domain.Trip
	switch strings.ToLower(bucket) {
	case BucketAll:
		trips = append(b.Upcoming, b.Past...)
	case BucketUpcoming:
		trips = b.Upcoming
	case BucketPast:
		trips = b.Past
	default:
		return nil, 0, fmt.Errorf("%w: bucket must be upcoming or past", domain.ErrValidation)
	}

	page, total := domain.Paginate(trips, p)
	out := make([]TripSummary, len(page))
	for i, t := range page {
		out[i] = s.summarize(t)
	}
	return out, total, nil
}

func (s *TripService) summarize(trip domain.Trip) TripSummary {
	now := s.now()
	return TripSummary{
		Trip:      trip,
		Past:      views.IsPast(trip, now),
		DaysUntil: views.DaysUntil(views.CountdownDate(trip, s.store.Flights(trip.ID), now), now),
	}
}

// validateTrip enforces:
//   - Destination must be non-empty.
//   - Start and end must be ISO dates.
//   - End must not be before start; a one-day trip is valid.
func validateTrip(in domain.TripInput) error {
	if in.Destination == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if err := validateDate("startDate", in.StartDate); err != nil {
		return err
	}
	if err := validateDate("endDate", in.EndDate); err != nil {
		return err
	}
	// ISO dates order lexically.
	if in.EndDate < in.StartDate {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	return nil
}
