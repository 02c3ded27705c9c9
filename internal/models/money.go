package models

import "github.com/shopspring/decimal"

// Money is an exact-amount value used wherever sums must not drift
// (analytics aggregation, budget comparison). Stored amounts stay float64
// in the row structs; convert at the aggregation boundary.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

func NewMoneyZero(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

func MoneyFromFloat(amount float64, currency string) Money {
	return Money{Amount: decimal.NewFromFloat(amount), Currency: currency}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) Subtract(other Money) Money {
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) Float64() float64 {
	f, _ := m.Amount.Float64()
	return f
}
