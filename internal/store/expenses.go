package store

import (
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// AddExpense appends an expense. The currency is trimmed and upper-cased,
// defaulting to USD when blank. The amount is stored as given.
func (s *Store) AddExpense(tripID string, in domain.ExpenseInput) domain.TripExpense {
	currency := normalizeCurrency(in.Currency)
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	expense := domain.TripExpense{
		ID:        s.newID(),
		Name:      strings.TrimSpace(in.Name),
		Amount:    in.Amount,
		Currency:  currency,
		IsSplit:   in.IsSplit,
		CreatedAt: s.now().UTC(),
	}

	s.mutate(func(st *domain.State) bool {
		st.ExpensesByTripID[tripID] = append(st.ExpensesByTripID[tripID], expense)
		return true
	})
	return expense
}

// UpdateExpense edits an expense. A blank name or currency keeps its previous
// value; amount and split flag are taken from the input.
func (s *Store) UpdateExpense(tripID, expenseID string, in domain.ExpenseInput) {
	s.mutate(func(st *domain.State) bool {
		expenses := st.ExpensesByTripID[tripID]
		for i := range expenses {
			e := &expenses[i]
			if e.ID != expenseID {
				continue
			}
			e.Name = keep(e.Name, in.Name)
			if c := normalizeCurrency(in.Currency); c != "" {
				e.Currency = c
			}
			e.Amount = in.Amount
			e.IsSplit = in.IsSplit
			return true
		}
		return false
	})
}

// DeleteExpense removes one expense.
func (s *Store) DeleteExpense(tripID, expenseID string) {
	s.mutate(func(st *domain.State) bool {
		expenses, ok := st.ExpensesByTripID[tripID]
		if !ok {
			return false
		}
		out, removed := without(expenses, func(e domain.TripExpense) bool { return e.ID == expenseID })
		st.ExpensesByTripID[tripID] = out
		return removed
	})
}

// Expenses returns the trip's expenses in insertion order.
func (s *Store) Expenses(tripID string) []domain.TripExpense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TripExpense{}, s.state.ExpensesByTripID[tripID]...)
}

// Expense returns one expense of the trip.
func (s *Store) Expense(tripID, expenseID string) (domain.TripExpense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.state.ExpensesByTripID[tripID] {
		if e.ID == expenseID {
			return e, true
		}
	}
	return domain.TripExpense{}, false
}

func normalizeCurrency(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}
