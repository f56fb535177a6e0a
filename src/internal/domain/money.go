package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency identifies the denomination of a Money value, e.g. "USD".
type Currency string

// Same reports whether two currency identifiers denote the same
// currency. Comparison is case-insensitive so "usd" and "USD" are one
// currency.
func (c Currency) Same(other Currency) bool {
	return strings.EqualFold(strings.TrimSpace(string(c)), strings.TrimSpace(string(other)))
}

// Money is an immutable amount in a single currency.
type Money struct {
	Currency Currency
	Amount   decimal.Decimal
}

func NewMoney(currency Currency, amount decimal.Decimal) Money {
	return Money{
		Currency: Currency(strings.ToUpper(strings.TrimSpace(string(currency)))),
		Amount:   amount,
	}
}

// SameCurrency reports whether m and other are uniform, i.e. safe to
// combine in one transaction.
func (m Money) SameCurrency(other Money) bool {
	return m.Currency.Same(other.Currency)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount.GreaterThan(decimal.Zero)
}
