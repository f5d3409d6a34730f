// Package money holds the rounding and arithmetic rules shared by bookings, payments and ledgers.
package money

import "github.com/shopspring/decimal"

// RoundToInt rounds half away from zero and returns whole currency units.
func RoundToInt(amount float64) int64 {
	return decimal.NewFromFloat(amount).Round(0).IntPart()
}

// FromFloat rounds to two decimal places.
func FromFloat(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

func FromInt(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

// NonNegative clamps negative amounts to zero.
func NonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}

	return amount
}

func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}

	return total
}
