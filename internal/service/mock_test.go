package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
	"github.com/pkordes/trip-planner/backend/internal/store"
)

// mockStore is a hand-written test double for the store interfaces.
// Each method is a function field; set only the ones your test needs.
// waitHydrated and identity default to "hydrated, signed in".
type mockStore struct {
	waitHydrated func(ctx context.Context) error
	identity     func() string

	trip    func(id string) (domain.Trip, bool)
	addTrip func(in domain.TripInput) domain.Trip
	trips   func() []domain.Trip

	addFlight    func(tripID string, in domain.FlightInput) domain.FlightInfo
	updateFlight func(tripID, flightID string, in domain.FlightInput)
	deleteFlight func(tripID, flightID string)
	clearFlights func(tripID string)
	flights      func(tripID string) []domain.FlightInfo
	flight       func(tripID, flightID string) (domain.FlightInfo, bool)

	addExpense    func(tripID string, in domain.ExpenseInput) domain.TripExpense
	updateExpense func(tripID, expenseID string, in domain.ExpenseInput)
	deleteExpense func(tripID, expenseID string)
	expenses      func(tripID string) []domain.TripExpense
	expense       func(tripID, expenseID string) (domain.TripExpense, bool)

	snapshot func() domain.State
}

func (m *mockStore) WaitHydrated(ctx context.Context) error {
	if m.waitHydrated == nil {
		return nil
	}
	return m.waitHydrated(ctx)
}
func (m *mockStore) Identity() string {
	if m.identity == nil {
		return "+15550001111"
	}
	return m.identity()
}
func (m *mockStore) Trip(id string) (domain.Trip, bool) {
	return m.trip(id)
}
func (m *mockStore) AddTrip(in domain.TripInput) domain.Trip {
	return m.addTrip(in)
}
func (m *mockStore) Trips() []domain.Trip {
	return m.trips()
}
func (m *mockStore) Flights(tripID string) []domain.FlightInfo {
	return m.flights(tripID)
}
func (m *mockStore) ClearFlights(tripID string) {
	m.clearFlights(tripID)
}
func (m *mockStore) DeleteFlight(tripID, flightID string) {
	m.deleteFlight(tripID, flightID)
}
func (m *mockStore) Expenses(tripID string) []domain.TripExpense {
	return m.expenses(tripID)
}
func (m *mockStore) DeleteExpense(tripID, expenseID string) {
	m.deleteExpense(tripID, expenseID)
}
func (m *mockStore) Snapshot() domain.State {
	return m.snapshot()
}
func (m *mockStore) AddFlight(tripID string, in domain.FlightInput) domain.FlightInfo {
	return m.addFlight(tripID, in)
}
func (m *mockStore) UpdateFlight(tripID, flightID string, in domain.FlightInput) {
	m.updateFlight(tripID, flightID, in)
}
func (m *mockStore) Flight(tripID, flightID string) (domain.FlightInfo, bool) {
	return m.flight(tripID, flightID)
}
func (m *mockStore) AddExpense(tripID string, in domain.ExpenseInput) domain.TripExpense {
	return m.addExpense(tripID, in)
}
func (m *mockStore) UpdateExpense(tripID, expenseID string, in domain.ExpenseInput) {
	m.updateExpense(tripID, expenseID, in)
}
func (m *mockStore) Expense(tripID, expenseID string) (domain.TripExpense, bool) {
	return m.expense(tripID, expenseID)
}

// compile-time checks: mockStore must satisfy the interfaces it stands in for.
var (
	_ service.TripStore    = (*mockStore)(nil)
	_ service.FlightStore  = (*mockStore)(nil)
	_ service.ExpenseStore = (*mockStore)(nil)
	_ service.ExportStore  = (*mockStore)(nil)
)

// ---- helpers ---------------------------------------------------------------

var lisbonTrip = domain.Trip{ID: "Lisbon|2025-06-01|2025-06-10", Destination: "Lisbon", StartDate: "2025-06-01", EndDate: "2025-06-10"}

// withTrip returns a trip lookup that knows only lisbonTrip.
func withTrip(id string) (domain.Trip, bool) {
	if id == lisbonTrip.ID {
		return lisbonTrip, true
	}
	return domain.Trip{}, false
}

// signedOut makes a mockStore report no identity.
func signedOut(m *mockStore) *mockStore {
	m.identity = func() string { return "" }
	return m
}

// newRealStore returns a hydrated in-memory store for flows that exercise
// several store operations together.
func newRealStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(repo.NewMemoryBlobStore())
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	s.SetIdentity(context.Background(), "+15550001111")
	require.NoError(t, s.WaitHydrated(context.Background()))
	return s
}
