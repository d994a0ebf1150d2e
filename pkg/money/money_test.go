package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected int64
	}{
		{name: "whole amount", amount: "80", expected: 8000},
		{name: "two decimals", amount: "53.07", expected: 5307},
		{name: "rounds half away from zero", amount: "0.005", expected: 1},
		{name: "rounds down", amount: "10.004", expected: 1000},
		{name: "zero", amount: "0", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToCents(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, "8", FromCents(800).String())
	assert.Equal(t, "53.07", FromCents(5307).String())
	assert.True(t, FromCents(4500).Equal(decimal.NewFromInt(45)))
}

func TestRateBps(t *testing.T) {
	assert.Equal(t, int64(1000), RateToBps(decimal.NewFromInt(10)))
	assert.Equal(t, int64(1250), RateToBps(decimal.RequireFromString("12.5")))
	assert.True(t, RateFromBps(1250).Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, int64(1250), RateToBps(RateFromBps(1250)))
}

func TestFits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected bool
	}{
		{name: "regular amount", amount: "100.00", expected: true},
		{name: "largest storable amount", amount: "92233720368547758.07", expected: true},
		{name: "one cent too many", amount: "92233720368547758.08", expected: false},
		{name: "far too large", amount: "100000000000000000000", expected: false},
		{name: "large negative", amount: "-100000000000000000000", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fits(decimal.RequireFromString(tt.amount)))
		})
	}
	assert.Equal(t, int64(math.MaxInt64), ToCents(MaxAmount))
}
