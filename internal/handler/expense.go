package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ExpenseRequest is the body of POST and PUT on expenses. Amount accepts a
// JSON number or a decimal string; a blank currency means USD on create and
// "unchanged" on update.
type ExpenseRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	IsSplit  bool            `json:"isSplit"`
}

func (b ExpenseRequest) input() domain.ExpenseInput {
	return domain.ExpenseInput{Name: b.Name, Amount: b.Amount, Currency: b.Currency, IsSplit: b.IsSplit}
}

// ListExpenses handles GET /trips/{tripId}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	expenses, err := s.svc.Expenses.List(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	if expenses == nil {
		expenses = []domain.TripExpense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// CreateExpense handles POST /trips/{tripId}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body ExpenseRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	e, err := s.svc.Expenses.Create(r.Context(), tripID, body.input())
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// GetExpenseTotals handles GET /trips/{tripId}/expenses/totals.
func (s *Server) GetExpenseTotals(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	totals, err := s.svc.Expenses.Totals(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// UpdateExpense handles PUT /trips/{tripId}/expenses/{expenseId}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "expenseId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body ExpenseRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	e, err := s.svc.Expenses.Update(r.Context(), ids[0], ids[1], body.input())
	if err != nil {
		s.serviceError(w, r, err, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteExpense handles DELETE /trips/{tripId}/expenses/{expenseId}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "expenseId")
	if err != nil {
		requestError(w, err)
		return
	}
	if err := s.svc.Expenses.Delete(r.Context(), ids[0], ids[1]); err != nil {
		s.serviceError(w, r, err, "expense not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
