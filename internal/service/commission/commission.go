// Package commission computes the commission owed on an attributed order.
package commission

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/pkg/money"
)

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// Calculate returns base * rate / 100 rounded to cents, half away from zero.
// The base is the discounted or the original amount, depending on the policy.
func Calculate(original, discounted, rate decimal.Decimal, base domain.CalculationBase) (decimal.Decimal, error) {
	if err := validate(original, discounted, rate, base); err != nil {
		return zero, err
	}

	amount := discounted
	if base == domain.BaseOriginalAmount {
		amount = original
	}
	return amount.Mul(rate).Div(hundred).Round(2), nil
}

func validate(original, discounted, rate decimal.Decimal, base domain.CalculationBase) error {
	switch {
	case !original.IsPositive():
		return fmt.Errorf("%w: original amount %s must be positive", domain.ErrInvalidAmount, original)
	case !money.Fits(original):
		return fmt.Errorf("%w: original amount %s exceeds %s", domain.ErrInvalidAmount, original, money.MaxAmount)
	case discounted.IsNegative():
		return fmt.Errorf("%w: discounted amount %s is negative", domain.ErrInvalidAmount, discounted)
	case discounted.GreaterThan(original):
		return fmt.Errorf("%w: discounted amount %s exceeds original %s", domain.ErrInvalidAmount, discounted, original)
	case rate.IsNegative() || rate.GreaterThan(hundred):
		return fmt.Errorf("%w: commission rate %s is out of range", domain.ErrInvalidAmount, rate)
	case !base.Valid():
		return fmt.Errorf("%w: unknown calculation base %q", domain.ErrInvalidAmount, base)
	}
	return nil
}
