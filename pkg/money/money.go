// Package money converts between decimal currency amounts and the integer
// representations used for storage and provider calls.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MaxAmount is the largest amount whose minor units fit in an int64.
var MaxAmount = decimal.New(math.MaxInt64, -2)

// Fits reports whether amount, rounded to cents, can be stored by ToCents.
func Fits(amount decimal.Decimal) bool {
	rounded := amount.Round(2)
	return !rounded.GreaterThan(MaxAmount) && !rounded.LessThan(MaxAmount.Neg())
}

// ToCents rounds to two decimal places and returns minor units. Amounts
// outside MaxAmount wrap; check them with Fits first.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Round(2).Mul(hundred).IntPart()
}

func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// RateToBps converts a percentage (12.5) to basis points (1250).
func RateToBps(rate decimal.Decimal) int64 {
	return rate.Round(2).Mul(hundred).IntPart()
}

func RateFromBps(bps int64) decimal.Decimal {
	return decimal.New(bps, -2)
}
