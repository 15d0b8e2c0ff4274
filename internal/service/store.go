package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/store"
	"github.com/pkordes/trip-planner/backend/internal/views"
)

// The store interfaces below are declared here, where they are consumed, so
// each service depends only on the store methods it calls. *store.Store
// satisfies all of them.

type readiness interface {
	WaitHydrated(ctx context.Context) error
	Identity() string
}

type tripLookup interface {
	Trip(id string) (domain.Trip, bool)
}

// TripStore is the store surface used by TripService.
type TripStore interface {
	readiness
	tripLookup
	AddTrip(in domain.TripInput) domain.Trip
	Trips() []domain.Trip
	Flights(tripID string) []domain.FlightInfo
}

// FlightStore is the store surface used by FlightService.
type FlightStore interface {
	readiness
	tripLookup
	AddFlight(tripID string, in domain.FlightInput) domain.FlightInfo
	UpdateFlight(tripID, flightID string, in domain.FlightInput)
	DeleteFlight(tripID, flightID string)
	ClearFlights(tripID string)
	Flights(tripID string) []domain.FlightInfo
	Flight(tripID, flightID string) (domain.FlightInfo, bool)
}

// ItineraryStore is the store surface used by ItineraryService.
type ItineraryStore interface {
	readiness
	tripLookup
	AddItineraryDay(tripID, label string) domain.ItineraryDay
	UpdateItineraryDay(tripID, dayID, label string)
	DeleteItineraryDay(tripID, dayID string)
	AddItineraryEvent(tripID, dayID string, in domain.EventInput) domain.ItineraryEvent
	UpdateItineraryEvent(tripID, dayID, eventID string, in domain.EventInput)
	DeleteItineraryEvent(tripID, dayID, eventID string)
	Itinerary(tripID string) []domain.ItineraryDay
	Day(tripID, dayID string) (domain.ItineraryDay, bool)
}

// ExpenseStore is the store surface used by ExpenseService.
type ExpenseStore interface {
	readiness
	tripLookup
	AddExpense(tripID string, in domain.ExpenseInput) domain.TripExpense
	UpdateExpense(tripID, expenseID string, in domain.ExpenseInput)
	DeleteExpense(tripID, expenseID string)
	Expenses(tripID string) []domain.TripExpense
	Expense(tripID, expenseID string) (domain.TripExpense, bool)
}

// JournalStore is the store surface used by JournalService.
type JournalStore interface {
	readiness
	tripLookup
	AddJournalEntry(tripID string, in domain.JournalInput) domain.JournalEntry
	UpdateJournalEntry(tripID, entryID, text string)
	DeleteJournalEntry(tripID, entryID string)
	Journal(tripID string) []domain.JournalEntry
	JournalEntry(tripID, entryID string) (domain.JournalEntry, bool)
}

// ExportStore is the store surface used by ExportService.
type ExportStore interface {
	readiness
	Snapshot() domain.State
}

// SessionStore is the store surface used by SessionService.
type SessionStore interface {
	readiness
	SetIdentity(ctx context.Context, userKey string)
	Status() store.Status
	LastPersistError() error
}

var (
	_ TripStore      = (*store.Store)(nil)
	_ FlightStore    = (*store.Store)(nil)
	_ ItineraryStore = (*store.Store)(nil)
	_ ExpenseStore   = (*store.Store)(nil)
	_ JournalStore   = (*store.Store)(nil)
	_ ExportStore    = (*store.Store)(nil)
	_ SessionStore   = (*store.Store)(nil)
)

// ready requires a signed-in user and waits for their document to load.
func ready(ctx context.Context, r readiness) error {
	if r.Identity() == "" {
		return domain.ErrNoIdentity
	}
	if err := r.WaitHydrated(ctx); err != nil {
		return fmt.Errorf("wait for hydration: %w", err)
	}
	if r.Identity() == "" {
		return domain.ErrNoIdentity
	}
	return nil
}

// requireTrip checks readiness and that tripID exists.
func requireTrip(ctx context.Context, s interface {
	readiness
	tripLookup
}, tripID string) (domain.Trip, error) {
	if err := ready(ctx, s); err != nil {
		return domain.Trip{}, err
	}
	trip, ok := s.Trip(tripID)
	if !ok {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", tripID, domain.ErrNotFound)
	}
	return trip, nil
}

// validateDate requires value to be an ISO calendar date.
func validateDate(field, value string) error {
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return fmt.Errorf("%w: %s must be a date (YYYY-MM-DD)", domain.ErrValidation, field)
	}
	return nil
}

// validateClock requires value to be "HH:MM" or "h:mm AM/PM".
func validateClock(field, value string) error {
	if _, _, ok := views.ParseClock(value); !ok {
		return fmt.Errorf("%w: %s must be a time (HH:MM or h:mm AM/PM)", domain.ErrValidation, field)
	}
	return nil
}

var currencyCode = regexp.MustCompile(`^[A-Za-z]{3}$`)

// validateCurrency accepts a blank code or three letters.
func validateCurrency(value string) error {
	v := strings.TrimSpace(value)
	if v != "" && !currencyCode.MatchString(v) {
		return fmt.Errorf("%w: currency must be a three-letter code", domain.ErrValidation)
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func trimmed(s string) string { return strings.TrimSpace(s) }
