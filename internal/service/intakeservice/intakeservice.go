package intakeservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/internal/service/commission"
	"github.com/GlebRadaev/payoutengine/pkg/money"
)

//go:generate mockgen -source=intakeservice.go -destination=mock_intakeservice.go -package=intakeservice

type Resolver interface {
	Resolve(ctx context.Context, merchantID, code string) (*domain.Attribution, error)
}

type Policies interface {
	GetPolicy(ctx context.Context, merchantID string) (*domain.MerchantPayoutPolicy, error)
}

type Ledger interface {
	Record(ctx context.Context, rec *domain.PayoutRecord) (bool, error)
}

type Settler interface {
	SettleIfDue(ctx context.Context, policy *domain.MerchantPayoutPolicy, promoter *domain.PromoterAccount) (*domain.SettlementResult, error)
}

var ErrInvalidEvent = errors.New("invalid order event")

type Service struct {
	resolver Resolver
	policies Policies
	ledger   Ledger
	settler  Settler
	now      func() time.Time
	newID    func() string
}

func New(resolver Resolver, policies Policies, ledger Ledger, settler Settler) *Service {
	return &Service{
		resolver: resolver,
		policies: policies,
		ledger:   ledger,
		settler:  settler,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// HandleOrderCreated records a PENDING payout for every attributed code of
// the order. Codes are processed independently; only a malformed event or
// an unavailable merchant policy fails the call. Redelivery of the same
// event is harmless.
func (s *Service) HandleOrderCreated(ctx context.Context, event domain.OrderEvent) (*domain.IntakeResult, error) {
	if strings.TrimSpace(event.MerchantID) == "" || strings.TrimSpace(event.OrderID) == "" {
		return nil, fmt.Errorf("%w: merchant and order ids are required", ErrInvalidEvent)
	}

	policy, err := s.policies.GetPolicy(ctx, event.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("load payout policy for merchant %s: %w", event.MerchantID, err)
	}

	result := &domain.IntakeResult{}
	var due []*domain.PromoterAccount
	for _, applied := range event.DiscountCodes {
		code := strings.TrimSpace(applied.Code)
		log := zap.L().With(
			zap.String("merchantID", event.MerchantID),
			zap.String("orderID", event.OrderID),
			zap.String("code", code))

		rec, promoter, err := s.processCode(ctx, event, policy, code, applied.DiscountAmount)
		switch {
		case err == nil:
			log.Info("commission recorded",
				zap.String("payoutID", rec.ID),
				zap.String("promoterID", rec.PromoterID),
				zap.Int64("amount", rec.CommissionAmount))
			result.Created = append(result.Created, rec.ID)
			due = appendPromoter(due, promoter)
		case errors.Is(err, domain.ErrNoAttributionFound):
			log.Debug("code is not attributed to a promoter")
			result.Skipped++
		case errors.Is(err, domain.ErrDuplicateEvent):
			log.Info("duplicate delivery, payout already recorded", zap.String("payoutID", rec.ID))
			result.Duplicates = append(result.Duplicates, rec.ID)
		case errors.Is(err, domain.ErrInvalidAmount):
			log.Warn("code rejected", zap.Error(err))
			result.Rejected = append(result.Rejected, code)
		default:
			log.Error("failed to process code", zap.Error(err))
			result.Rejected = append(result.Rejected, code)
			result.Retryable = true
		}
	}

	for _, promoter := range due {
		settlement, err := s.settler.SettleIfDue(ctx, policy, promoter)
		if err != nil {
			zap.L().Error("auto payout failed", zap.String("promoterID", promoter.ID), zap.Error(err))
			continue
		}
		if len(settlement.Settled)+len(settlement.Failed) > 0 {
			zap.L().Info("auto payout finished",
				zap.String("promoterID", promoter.ID),
				zap.Strings("settled", settlement.Settled),
				zap.Strings("failed", settlement.Failed))
		}
	}
	return result, nil
}

func (s *Service) processCode(ctx context.Context, event domain.OrderEvent, policy *domain.MerchantPayoutPolicy, code string, discount decimal.Decimal) (*domain.PayoutRecord, *domain.PromoterAccount, error) {
	attribution, err := s.resolver.Resolve(ctx, event.MerchantID, code)
	if err != nil {
		return nil, nil, err
	}
	promoter := attribution.Promoter

	discounted := event.OriginalAmount.Sub(discount)
	amount, err := commission.Calculate(event.OriginalAmount, discounted, promoter.CommissionRate, policy.CalculationBase)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	rec := &domain.PayoutRecord{
		ID:               s.newID(),
		MerchantID:       event.MerchantID,
		PromoterID:       promoter.ID,
		OrderID:          event.OrderID,
		DiscountCode:     code,
		OriginalAmount:   money.ToCents(event.OriginalAmount),
		DiscountedAmount: money.ToCents(discounted),
		CommissionRate:   promoter.CommissionRate,
		CommissionAmount: money.ToCents(amount),
		Status:           domain.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created, err := s.ledger.Record(ctx, rec)
	if err != nil {
		return nil, nil, err
	}
	if !created {
		return rec, promoter, domain.ErrDuplicateEvent
	}
	return rec, promoter, nil
}

func appendPromoter(list []*domain.PromoterAccount, promoter *domain.PromoterAccount) []*domain.PromoterAccount {
	for _, p := range list {
		if p.ID == promoter.ID {
			return list
		}
	}
	return append(list, promoter)
}
