package domain

import "github.com/shopspring/decimal"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per expense, with trip fields
// repeated for every expense on that trip. Trips with no expenses yield one
// row with zero values for all expense fields.
type ExportRow struct {
	// Trip fields, repeated for every expense on the trip.
	TripID          string
	TripDestination string
	TripStartDate   string
	TripEndDate     string
	FlightCount     int
	DayCount        int

	// Expense fields, zero values when the trip has no expenses.
	ExpenseName     string
	ExpenseAmount   decimal.Decimal
	ExpenseCurrency string
	ExpenseIsSplit  bool
}
