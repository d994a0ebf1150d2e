package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationBase selects which order amount commission is computed from.
type CalculationBase string

const (
	BaseDiscountedAmount CalculationBase = "DISCOUNTED_AMOUNT"
	BaseOriginalAmount   CalculationBase = "ORIGINAL_AMOUNT"
)

func (b CalculationBase) Valid() bool {
	return b == BaseDiscountedAmount || b == BaseOriginalAmount
}

type PromoterAccount struct {
	ID             string          `db:"id"`
	MerchantID     string          `db:"merchant_id"`
	CommissionRate decimal.Decimal `db:"commission_rate_bps"`
	DestinationID  *string         `db:"transfer_destination_id"`
	Active         bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
}

func (p *PromoterAccount) HasDestination() bool {
	return p.DestinationID != nil && *p.DestinationID != ""
}

type DiscountCode struct {
	Code       string     `db:"code"`
	MerchantID string     `db:"merchant_id"`
	PromoterID string     `db:"promoter_id"`
	IsActive   bool       `db:"is_active"`
	UsageLimit *int       `db:"usage_limit"`
	ExpiresAt  *time.Time `db:"expires_at"`
}

type MerchantPayoutPolicy struct {
	MerchantID      string          `db:"merchant_id"`
	AutoPayout      bool            `db:"auto_payout"`
	MinimumPayout   int64           `db:"minimum_payout_cents"`
	CalculationBase CalculationBase `db:"calculation_base"`
}

// DefaultPolicy applies to merchants that never configured payouts.
func DefaultPolicy(merchantID string) *MerchantPayoutPolicy {
	return &MerchantPayoutPolicy{
		MerchantID:      merchantID,
		AutoPayout:      false,
		MinimumPayout:   0,
		CalculationBase: BaseDiscountedAmount,
	}
}

// PayoutRecord amounts are minor currency units.
type PayoutRecord struct {
	ID               string          `db:"id"`
	MerchantID       string          `db:"merchant_id"`
	PromoterID       string          `db:"promoter_id"`
	OrderID          string          `db:"order_id"`
	DiscountCode     string          `db:"discount_code"`
	OriginalAmount   int64           `db:"original_amount_cents"`
	DiscountedAmount int64           `db:"discounted_amount_cents"`
	CommissionRate   decimal.Decimal `db:"commission_rate_bps"`
	CommissionAmount int64           `db:"commission_amount_cents"`
	Status           PayoutStatus    `db:"status"`
	TransferID       *string         `db:"transfer_id"`
	FailureReason    *string         `db:"failure_reason"`
	Attempts         int             `db:"attempts"`
	CreatedAt        time.Time       `db:"created_at"`
	ProcessedAt      *time.Time      `db:"processed_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

type PayoutTransition struct {
	PayoutID string       `db:"payout_id"`
	From     PayoutStatus `db:"from_status"`
	To       PayoutStatus `db:"to_status"`
	Reason   *string      `db:"reason"`
	At       time.Time    `db:"at"`
}

type AppliedCode struct {
	Code           string
	DiscountAmount decimal.Decimal
}

// OrderEvent is an order-created webhook that has already passed signature verification.
type OrderEvent struct {
	MerchantID     string
	OrderID        string
	OriginalAmount decimal.Decimal
	DiscountCodes  []AppliedCode
}
