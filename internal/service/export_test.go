package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

func exportState() domain.State {
	st := domain.NewState()
	porto := domain.Trip{ID: "Porto|2025-09-01|2025-09-03", Destination: "Porto", StartDate: "2025-09-01", EndDate: "2025-09-03"}
	st.Trips = []domain.Trip{lisbonTrip, porto}
	st.FlightsByTripID[lisbonTrip.ID] = []domain.FlightInfo{{ID: "f1"}, {ID: "f2"}}
	st.ItineraryByTripID[lisbonTrip.ID] = []domain.ItineraryDay{{ID: "d1", Label: "Day 1"}}
	st.ExpensesByTripID[lisbonTrip.ID] = []domain.TripExpense{
		{ID: "x1", Name: "Hotel", Amount: decimal.NewFromInt(420), Currency: "EUR"},
		{ID: "x2", Name: "Dinner", Amount: decimal.RequireFromString("38.5"), Currency: "EUR", IsSplit: true},
	}
	return st
}

func TestExportService_OneRowPerExpense(t *testing.T) {
	m := &mockStore{snapshot: exportState}
	svc := service.NewExportService(m)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, lisbonTrip.ID, rows[0].TripID)
	assert.Equal(t, "Hotel", rows[0].ExpenseName)
	assert.Equal(t, 2, rows[0].FlightCount)
	assert.Equal(t, 1, rows[0].DayCount)

	assert.Equal(t, "Dinner", rows[1].ExpenseName)
	assert.True(t, rows[1].ExpenseIsSplit)
	assert.Equal(t, "Lisbon", rows[1].TripDestination, "trip fields repeat on every row")
}

func TestExportService_TripWithoutExpensesYieldsOneRow(t *testing.T) {
	m := &mockStore{snapshot: exportState}
	svc := service.NewExportService(m)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	last := rows[len(rows)-1]
	assert.Equal(t, "Porto", last.TripDestination)
	assert.Empty(t, last.ExpenseName)
	assert.True(t, last.ExpenseAmount.IsZero())
	assert.Zero(t, last.FlightCount)
}

func TestExportService_Empty(t *testing.T) {
	m := &mockStore{snapshot: domain.NewState}
	svc := service.NewExportService(m)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_SignedOut(t *testing.T) {
	svc := service.NewExportService(signedOut(&mockStore{snapshot: domain.NewState}))

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoIdentity)
}
