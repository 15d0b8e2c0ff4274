package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ExportService assembles a full flat export of the signed-in user's trips.
type ExportService struct {
	store ExportStore
}

// NewExportService constructs an ExportService backed by the provided store.
func NewExportService(s ExportStore) *ExportService {
	return &ExportService{store: s}
}

// Export returns one ExportRow per expense across all trips, in trip list
// order. Trips with no expenses contribute one row with empty expense fields.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	if err := ready(ctx, s.store); err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	state := s.store.Snapshot()
	rows := []domain.ExportRow{}
	for _, trip := range state.Trips {
		base := domain.ExportRow{
			TripID:          trip.ID,
			TripDestination: trip.Destination,
			TripStartDate:   trip.StartDate,
			TripEndDate:     trip.EndDate,
			FlightCount:     len(state.FlightsByTripID[trip.ID]),
			DayCount:        len(state.ItineraryByTripID[trip.ID]),
		}

		expenses := state.ExpensesByTripID[trip.ID]
		if len(expenses) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, e := range expenses {
			row := base
			row.ExpenseName = e.Name
			row.ExpenseAmount = e.Amount
			row.ExpenseCurrency = e.Currency
			row.ExpenseIsSplit = e.IsSplit
			rows = append(rows, row)
		}
	}
	return rows, nil
}
