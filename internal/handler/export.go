package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Export formats accepted by ?format=.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_destination", "trip_start_date", "trip_end_date",
	"flight_count", "day_count",
	"expense_name", "expense_amount", "expense_currency", "expense_is_split",
}

// ExportRow is the JSON form of one export row. Expense fields are omitted
// for trips without expenses.
type ExportRow struct {
	TripID          string           `json:"tripId"`
	TripDestination string           `json:"tripDestination"`
	TripStartDate   string           `json:"tripStartDate"`
	TripEndDate     string           `json:"tripEndDate"`
	FlightCount     int              `json:"flightCount"`
	DayCount        int              `json:"dayCount"`
	ExpenseName     *string          `json:"expenseName,omitempty"`
	ExpenseAmount   *decimal.Decimal `json:"expenseAmount,omitempty"`
	ExpenseCurrency *string          `json:"expenseCurrency,omitempty"`
	ExpenseIsSplit  *bool            `json:"expenseIsSplit,omitempty"`
}

// GetExport handles GET /export.
// It returns a flat table of every trip and expense. CSV is the default;
// ?format=json returns the same rows as JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := queryParam(r, "format", &format); err != nil {
		requestError(w, err)
		return
	}
	f := FormatCSV
	if format != nil {
		f = *format
	}
	if f != FormatCSV && f != FormatJSON {
		requestError(w, fmt.Errorf("format must be %s or %s", FormatCSV, FormatJSON))
		return
	}

	rows, err := s.svc.Export.Export(r.Context())
	if err != nil {
		s.serviceError(w, r, err, "no data to export")
		return
	}

	if f == FormatJSON {
		writeJSON(w, http.StatusOK, ToExportRows(rows))
		return
	}
	body := buildCSV(rows)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// ToExportRows maps domain rows to their JSON form. A row without an
// expense name belongs to a trip with no expenses.
func ToExportRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		row := ExportRow{
			TripID:          r.TripID,
			TripDestination: r.TripDestination,
			TripStartDate:   r.TripStartDate,
			TripEndDate:     r.TripEndDate,
			FlightCount:     r.FlightCount,
			DayCount:        r.DayCount,
		}
		if r.ExpenseName != "" {
			row.ExpenseName = &r.ExpenseName
			row.ExpenseAmount = &r.ExpenseAmount
			row.ExpenseCurrency = &r.ExpenseCurrency
			row.ExpenseIsSplit = &r.ExpenseIsSplit
		}
		out = append(out, row)
	}
	return out
}

// buildCSV encodes domain rows as CSV with a header row.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	// bytes.Buffer writes never fail.
	_ = WriteCSV(&buf, rows)
	return &buf
}

// WriteCSV writes rows to w as CSV, header first. tripctl export shares it
// with the HTTP handler.
func WriteCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(csvRecord(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(r domain.ExportRow) []string {
	amount, split := "", ""
	if r.ExpenseName != "" {
		amount = r.ExpenseAmount.StringFixed(2)
		split = strconv.FormatBool(r.ExpenseIsSplit)
	}
	return []string{
		r.TripID,
		r.TripDestination,
		r.TripStartDate,
		r.TripEndDate,
		strconv.Itoa(r.FlightCount),
		strconv.Itoa(r.DayCount),
		r.ExpenseName,
		amount,
		r.ExpenseCurrency,
		split,
	}
}
