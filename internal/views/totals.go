package views

import (
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CurrencyTotal is the exact sum of a trip's expenses in one currency.
type CurrencyTotal struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// String renders the total with two decimals and the code, e.g. "15.00 USD".
func (c CurrencyTotal) String() string {
	return c.Amount.StringFixed(2) + " " + c.Currency
}

// Display renders the total with the currency's symbol and minor units, e.g.
// "$15.00". Codes unknown to go-money fall back to String.
func (c CurrencyTotal) Display() string {
	if money.GetCurrency(c.Currency) == nil {
		return c.String()
	}
	cur := money.New(0, c.Currency).Currency()
	minor := c.Amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Totals sums expenses per currency, sorted by currency code. Blank currencies
// count as USD. No expenses yields an empty, non-nil slice.
func Totals(expenses []domain.TripExpense) []CurrencyTotal {
	sums := map[string]decimal.Decimal{}
	for _, e := range expenses {
		code := strings.ToUpper(strings.TrimSpace(e.Currency))
		if code == "" {
			code = domain.DefaultCurrency
		}
		sums[code] = sums[code].Add(e.Amount)
	}

	out := make([]CurrencyTotal, 0, len(sums))
	for code, amount := range sums {
		out = append(out, CurrencyTotal{Currency: code, Amount: amount})
	}
	slices.SortFunc(out, func(a, b CurrencyTotal) int { return strings.Compare(a.Currency, b.Currency) })
	return out
}

// FormatTotals joins the totals for display, or returns "0.00" when there
// are none.
func FormatTotals(totals []CurrencyTotal) string {
	if len(totals) == 0 {
		return "0.00"
	}
	parts := make([]string, len(totals))
	for i, t := range totals {
		parts[i] = t.String()
	}
	return strings.Join(parts, " · ")
}
