package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/pkg/money"
)

type PayoutResponseDTO struct {
	ID               string          `json:"id" example:"0d7f9c1e-5b7a-4c43-9a55-1f2e8b6b7a10"`
	MerchantID       string          `json:"merchant_id" example:"shop-1"`
	PromoterID       string          `json:"promoter_id" example:"promo-1"`
	OrderID          string          `json:"order_id" example:"5550012"`
	DiscountCode     string          `json:"discount_code" example:"ALICE10"`
	OriginalAmount   decimal.Decimal `json:"original_amount" swaggertype:"string" example:"100"`
	DiscountedAmount decimal.Decimal `json:"discounted_amount" swaggertype:"string" example:"80"`
	CommissionRate   decimal.Decimal `json:"commission_rate" swaggertype:"string" example:"10"`
	CommissionAmount decimal.Decimal `json:"commission_amount" swaggertype:"string" example:"8"`
	Status           string          `json:"status" example:"COMPLETED"`
	TransferID       *string         `json:"transfer_id,omitempty" example:"tr_1OaBcD"`
	FailureReason    *string         `json:"failure_reason,omitempty" example:"NO_DESTINATION"`
	Attempts         int             `json:"attempts" example:"1"`
	CreatedAt        time.Time       `json:"created_at" example:"2020-12-09T16:09:57+03:00"`
	ProcessedAt      *time.Time      `json:"processed_at,omitempty" example:"2020-12-09T16:10:02+03:00"`
}

type TransitionDTO struct {
	From   string    `json:"from" example:"PROCESSING"`
	To     string    `json:"to" example:"FAILED"`
	Reason *string   `json:"reason,omitempty" example:"PROVIDER_TIMEOUT"`
	At     time.Time `json:"at" example:"2020-12-09T16:10:02+03:00"`
}

type PayoutDetailsResponseDTO struct {
	PayoutResponseDTO
	Transitions []TransitionDTO `json:"transitions"`
}

type SettleResponseDTO struct {
	Settled []string `json:"settled"`
	Failed  []string `json:"failed"`
	Skipped []string `json:"skipped,omitempty"`
}

type RetryResponseDTO struct {
	PayoutID string `json:"payout_id" example:"0d7f9c1e-5b7a-4c43-9a55-1f2e8b6b7a10"`
	Status   string `json:"status" example:"COMPLETED"`
}

func NewPayoutResponse(rec domain.PayoutRecord) PayoutResponseDTO {
	return PayoutResponseDTO{
		ID:               rec.ID,
		MerchantID:       rec.MerchantID,
		PromoterID:       rec.PromoterID,
		OrderID:          rec.OrderID,
		DiscountCode:     rec.DiscountCode,
		OriginalAmount:   money.FromCents(rec.OriginalAmount),
		DiscountedAmount: money.FromCents(rec.DiscountedAmount),
		CommissionRate:   rec.CommissionRate,
		CommissionAmount: money.FromCents(rec.CommissionAmount),
		Status:           string(rec.Status),
		TransferID:       rec.TransferID,
		FailureReason:    rec.FailureReason,
		Attempts:         rec.Attempts,
		CreatedAt:        rec.CreatedAt,
		ProcessedAt:      rec.ProcessedAt,
	}
}

func NewPayoutDetailsResponse(rec domain.PayoutRecord, history []domain.PayoutTransition) PayoutDetailsResponseDTO {
	details := PayoutDetailsResponseDTO{
		PayoutResponseDTO: NewPayoutResponse(rec),
		Transitions:       make([]TransitionDTO, 0, len(history)),
	}
	for _, t := range history {
		details.Transitions = append(details.Transitions, TransitionDTO{
			From:   string(t.From),
			To:     string(t.To),
			Reason: t.Reason,
			At:     t.At,
		})
	}
	return details
}

func NewSettleResponse(result *domain.SettlementResult) SettleResponseDTO {
	return SettleResponseDTO{
		Settled: nonNil(result.Settled),
		Failed:  nonNil(result.Failed),
		Skipped: result.Skipped,
	}
}
