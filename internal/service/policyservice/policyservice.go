package policyservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

//go:generate mockgen -source=policyservice.go -destination=mock_policyservice.go -package=policyservice

type Repo interface {
	GetPolicy(ctx context.Context, merchantID string) (*domain.MerchantPayoutPolicy, error)
}

type Ledger interface {
	Pending(ctx context.Context, promoterID string) ([]domain.PayoutRecord, error)
}

type Service struct {
	repo   Repo
	ledger Ledger
}

func New(repo Repo, ledger Ledger) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger,
	}
}

// GetPolicy falls back to domain.DefaultPolicy for merchants without one.
func (s *Service) GetPolicy(ctx context.Context, merchantID string) (*domain.MerchantPayoutPolicy, error) {
	policy, err := s.repo.GetPolicy(ctx, merchantID)
	if err != nil {
		zap.L().Error("failed to load payout policy", zap.String("merchantID", merchantID), zap.Error(err))
		return nil, err
	}
	if policy == nil {
		zap.L().Debug("merchant has no payout policy, using default", zap.String("merchantID", merchantID))
		return domain.DefaultPolicy(merchantID), nil
	}
	if !policy.CalculationBase.Valid() {
		zap.L().Warn("unknown calculation base, using discounted amount",
			zap.String("merchantID", merchantID), zap.String("base", string(policy.CalculationBase)))
		policy.CalculationBase = domain.BaseDiscountedAmount
	}
	return policy, nil
}

// Evaluate decides whether the promoter's pending commission is due for
// settlement. It never changes the ledger.
func (s *Service) Evaluate(ctx context.Context, policy *domain.MerchantPayoutPolicy, promoterID string) (*domain.SettlementDecision, error) {
	if policy == nil || !policy.AutoPayout {
		return &domain.SettlementDecision{}, nil
	}

	pending, err := s.ledger.Pending(ctx, promoterID)
	if err != nil {
		zap.L().Error("failed to get pending payouts", zap.String("promoterID", promoterID), zap.Error(err))
		return nil, err
	}

	decision := &domain.SettlementDecision{}
	for _, rec := range pending {
		decision.PendingTotal += rec.CommissionAmount
		decision.PayoutIDs = append(decision.PayoutIDs, rec.ID)
	}
	decision.Settle = len(pending) > 0 && decision.PendingTotal >= policy.MinimumPayout
	if !decision.Settle {
		decision.PayoutIDs = nil
	}
	return decision, nil
}
