package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/views"
)

// TotalLine is one currency's total in the forms a client may want to show.
type TotalLine struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	Text     string          `json:"text"`
	Display  string          `json:"display"`
}

// ExpenseTotals summarises a trip's spending per currency.
type ExpenseTotals struct {
	Totals  []TotalLine `json:"totals"`
	Summary string      `json:"summary"`
}

// ExpenseService implements business logic for Expense operations.
type ExpenseService struct {
	store ExpenseStore
}

// NewExpenseService constructs an ExpenseService backed by the provided store.
func NewExpenseService(s ExpenseStore) *ExpenseService {
	return &ExpenseService{store: s}
}

// List returns the trip's expenses in the order they were added.
func (s *ExpenseService) List(ctx context.Context, tripID string) ([]domain.TripExpense, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return nil, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	return s.store.Expenses(tripID), nil
}

// Create validates and adds an expense. A blank currency defaults to USD.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip does not exist.
func (s *ExpenseService) Create(ctx context.Context, tripID string, in domain.ExpenseInput) (domain.TripExpense, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return domain.TripExpense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	if blank(in.Name) {
		return domain.TripExpense{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validateExpense(in); err != nil {
		return domain.TripExpense{}, err
	}
	return s.store.AddExpense(tripID, in), nil
}

// Update validates and applies changes to an expense. A blank name or
// currency keeps the stored value.
func (s *ExpenseService) Update(ctx context.Context, tripID, expenseID string, in domain.ExpenseInput) (domain.TripExpense, error) {
	if _, err := s.find(ctx, tripID, expenseID); err != nil {
		return domain.TripExpense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	if err := validateExpense(in); err != nil {
		return domain.TripExpense{}, err
	}
	s.store.UpdateExpense(tripID, expenseID, in)
	e, _ := s.store.Expense(tripID, expenseID)
	return e, nil
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, tripID, expenseID string) error {
	if _, err := s.find(ctx, tripID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	s.store.DeleteExpense(tripID, expenseID)
	return nil
}

// Totals sums the trip's expenses per currency, sorted by currency code.
func (s *ExpenseService) Totals(ctx context.Context, tripID string) (ExpenseTotals, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return ExpenseTotals{}, fmt.Errorf("service.ExpenseService.Totals: %w", err)
	}
	totals := views.Totals(s.store.Expenses(tripID))
	out := ExpenseTotals{Totals: make([]TotalLine, len(totals)), Summary: views.FormatTotals(totals)}
	for i, t := range totals {
		out.Totals[i] = TotalLine{Currency: t.Currency, Amount: t.Amount, Text: t.String(), Display: t.Display()}
	}
	return out, nil
}

func (s *ExpenseService) find(ctx context.Context, tripID, expenseID string) (domain.TripExpense, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return domain.TripExpense{}, err
	}
	e, ok := s.store.Expense(tripID, expenseID)
	if !ok {
		return domain.TripExpense{}, fmt.Errorf("expense %q: %w", expenseID, domain.ErrNotFound)
	}
	return e, nil
}

// validateExpense enforces:
//   - Amount must be greater than zero.
//   - Currency, when given, must be a three-letter code.
func validateExpense(in domain.ExpenseInput) error {
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	}
	return validateCurrency(in.Currency)
}
