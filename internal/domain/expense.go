package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assigned to expenses added without a currency code.
const DefaultCurrency = "USD"

// TripExpense is money spent on a trip.
// Amount is kept as an exact decimal; Currency is always trimmed and upper-cased.
type TripExpense struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	IsSplit   bool            `json:"isSplit"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ExpenseInput is the caller-supplied content of an expense.
type ExpenseInput struct {
	Name     string
	Amount   decimal.Decimal
	Currency string
	IsSplit  bool
}
