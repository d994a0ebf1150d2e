package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		original   string
		discounted string
		rate       string
		base       domain.CalculationBase
		expected   string
		expectErr  bool
	}{
		{
			name:       "Discounted base",
			original:   "100.00",
			discounted: "80.00",
			rate:       "10",
			base:       domain.BaseDiscountedAmount,
			expected:   "8.00",
		},
		{
			name:       "Original base",
			original:   "100.00",
			discounted: "80.00",
			rate:       "10",
			base:       domain.BaseOriginalAmount,
			expected:   "10.00",
		},
		{
			name:       "Half cent rounds away from zero",
			original:   "10.05",
			discounted: "10.05",
			rate:       "50",
			base:       domain.BaseDiscountedAmount,
			expected:   "5.03",
		},
		{
			name:       "Fractional rate",
			original:   "59.99",
			discounted: "49.99",
			rate:       "12.5",
			base:       domain.BaseDiscountedAmount,
			expected:   "6.25",
		},
		{
			name:       "Zero rate still yields a commission",
			original:   "100.00",
			discounted: "80.00",
			rate:       "0",
			base:       domain.BaseDiscountedAmount,
			expected:   "0",
		},
		{
			name:       "Fully discounted order",
			original:   "100.00",
			discounted: "0",
			rate:       "10",
			base:       domain.BaseDiscountedAmount,
			expected:   "0",
		},
		{
			name:       "Discounted exceeds original",
			original:   "80.00",
			discounted: "100.00",
			rate:       "10",
			base:       domain.BaseDiscountedAmount,
			expectErr:  true,
		},
		{
			name:       "Zero original amount",
			original:   "0",
			discounted: "0",
			rate:       "10",
			base:       domain.BaseDiscountedAmount,
			expectErr:  true,
		},
		{
			name:       "Negative discounted amount",
			original:   "100.00",
			discounted: "-1",
			rate:       "10",
			base:       domain.BaseDiscountedAmount,
			expectErr:  true,
		},
		{
			name:       "Original amount too large to store",
			original:   "100000000000000000000",
			discounted: "100000000000000000000",
			rate:       "10",
			base:       domain.BaseDiscountedAmount,
			expectErr:  true,
		},
		{
			name:       "Largest storable original amount",
			original:   "92233720368547758.07",
			discounted: "1000.00",
			rate:       "10",
			base:       domain.BaseDiscountedAmount,
			expected:   "100.00",
		},
		{
			name:       "Rate above one hundred",
			original:   "100.00",
			discounted: "80.00",
			rate:       "100.01",
			base:       domain.BaseDiscountedAmount,
			expectErr:  true,
		},
		{
			name:       "Unknown base",
			original:   "100.00",
			discounted: "80.00",
			rate:       "10",
			base:       domain.CalculationBase("NET_AMOUNT"),
			expectErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Calculate(d(tt.original), d(tt.discounted), d(tt.rate), tt.base)
			if tt.expectErr {
				assert.ErrorIs(t, err, domain.ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.True(t, result.Equal(d(tt.expected)), "got %s, want %s", result, tt.expected)
			assert.False(t, result.IsNegative())
		})
	}
}
