package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

type OrderCreatedRequestDTO struct {
	MerchantID     string           `json:"merchant_id" validate:"required,max=128" example:"shop-1"`
	OrderID        string           `json:"order_id" validate:"required,max=128" example:"5550012"`
	OriginalAmount decimal.Decimal  `json:"original_amount" swaggertype:"string" example:"100.00"`
	DiscountCodes  []AppliedCodeDTO `json:"discount_codes" validate:"max=50,dive"`
}

type AppliedCodeDTO struct {
	Code           string          `json:"code" validate:"required,max=64" example:"ALICE10"`
	DiscountAmount decimal.Decimal `json:"discount_amount" swaggertype:"string" example:"20.00"`
}

func (r OrderCreatedRequestDTO) ToEvent() domain.OrderEvent {
	event := domain.OrderEvent{
		MerchantID:     strings.TrimSpace(r.MerchantID),
		OrderID:        strings.TrimSpace(r.OrderID),
		OriginalAmount: r.OriginalAmount,
	}
	for _, code := range r.DiscountCodes {
		event.DiscountCodes = append(event.DiscountCodes, domain.AppliedCode{
			Code:           code.Code,
			DiscountAmount: code.DiscountAmount,
		})
	}
	return event
}

type IntakeResponseDTO struct {
	Created    []string `json:"created"`
	Duplicates []string `json:"duplicates"`
	Skipped    int      `json:"skipped" example:"1"`
	Rejected   []string `json:"rejected"`
}

func NewIntakeResponse(result *domain.IntakeResult) IntakeResponseDTO {
	return IntakeResponseDTO{
		Created:    nonNil(result.Created),
		Duplicates: nonNil(result.Duplicates),
		Skipped:    result.Skipped,
		Rejected:   nonNil(result.Rejected),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
