package money_test

import (
	"testing"

	"hotelier/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundToInt(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int64
	}{
		{name: "rounds down below half", input: 1499.49, expected: 1499},
		{name: "rounds half up", input: 1499.5, expected: 1500},
		{name: "keeps integers", input: 2500, expected: 2500},
		{name: "rounds negative half away from zero", input: -10.5, expected: -11},
		{name: "zero", input: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, money.RoundToInt(tt.input))
		})
	}
}

func TestNonNegativeAndSum(t *testing.T) {
	assert.True(t, money.NonNegative(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, money.NonNegative(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))

	total := money.Sum(money.FromFloat(10.25), money.FromFloat(0.755), money.FromInt(4))
	assert.Equal(t, "15.01", total.StringFixed(2))
}
