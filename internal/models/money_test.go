package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyAddSubtract(t *testing.T) {
	a := MoneyFromFloat(10.10, "USD")
	b := MoneyFromFloat(0.20, "USD")

	sum := a.Add(b)
	assert.True(t, sum.Amount.Equal(decimal.NewFromFloat(10.30)), "got %s", sum.Amount)

	diff := b.Subtract(a)
	assert.True(t, diff.IsNegative())
	assert.InDelta(t, -9.90, diff.Float64(), 1e-9)
}

func TestMoneyFloatDrift(t *testing.T) {
	// 0.1 added ten times must be exactly 1.0
	sum := NewMoneyZero("USD")
	for i := 0; i < 10; i++ {
		sum = sum.Add(MoneyFromFloat(0.1, "USD"))
	}
	assert.True(t, sum.Amount.Equal(decimal.NewFromInt(1)), "got %s", sum.Amount)
}
