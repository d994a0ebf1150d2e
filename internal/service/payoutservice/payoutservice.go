package payoutservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

//go:generate mockgen -source=payoutservice.go -destination=mock_payoutservice.go -package=payoutservice

type Ledger interface {
	Get(ctx context.Context, id string) (*domain.PayoutRecord, error)
	List(ctx context.Context, promoterID string) ([]domain.PayoutRecord, error)
	History(ctx context.Context, id string) ([]domain.PayoutTransition, error)
	PromotersWithPending(ctx context.Context, limit uint32) ([]string, error)
	Stale(ctx context.Context, olderThan time.Duration, limit uint32) ([]domain.PayoutRecord, error)
	Transition(ctx context.Context, id string, to domain.PayoutStatus, change domain.StatusChange) (*domain.PayoutRecord, error)
}

type PromoterRepo interface {
	FindByID(ctx context.Context, id string) (*domain.PromoterAccount, error)
}

type Policies interface {
	GetPolicy(ctx context.Context, merchantID string) (*domain.MerchantPayoutPolicy, error)
	Evaluate(ctx context.Context, policy *domain.MerchantPayoutPolicy, promoterID string) (*domain.SettlementDecision, error)
}

type Executor interface {
	Settle(ctx context.Context, promoter *domain.PromoterAccount, payoutIDs []string) *domain.SettlementResult
	Retry(ctx context.Context, promoter *domain.PromoterAccount, payoutID string) (*domain.PayoutRecord, error)
}

type Service struct {
	ledger     Ledger
	promoters  PromoterRepo
	policies   Policies
	executor   Executor
	staleAfter time.Duration
	batchLimit uint32
}

func New(ledger Ledger, promoters PromoterRepo, policies Policies, executor Executor, staleAfter time.Duration) *Service {
	return &Service{
		ledger:     ledger,
		promoters:  promoters,
		policies:   policies,
		executor:   executor,
		staleAfter: staleAfter,
		batchLimit: 1000,
	}
}

// EvaluateAndSettle settles the promoter's PENDING records if the merchant
// policy says they are due.
func (s *Service) EvaluateAndSettle(ctx context.Context, promoterID string) (*domain.SettlementResult, error) {
	promoter, err := s.promoter(ctx, promoterID)
	if err != nil {
		return nil, err
	}
	policy, err := s.policies.GetPolicy(ctx, promoter.MerchantID)
	if err != nil {
		return nil, err
	}
	return s.SettleIfDue(ctx, policy, promoter)
}

func (s *Service) SettleIfDue(ctx context.Context, policy *domain.MerchantPayoutPolicy, promoter *domain.PromoterAccount) (*domain.SettlementResult, error) {
	decision, err := s.policies.Evaluate(ctx, policy, promoter.ID)
	if err != nil {
		return nil, err
	}
	if !decision.Settle {
		zap.L().Debug("promoter is not due for payout",
			zap.String("promoterID", promoter.ID),
			zap.Int64("pending", decision.PendingTotal),
			zap.Int64("minimum", policy.MinimumPayout))
		return &domain.SettlementResult{}, nil
	}

	zap.L().Info("settling promoter",
		zap.String("promoterID", promoter.ID),
		zap.String("merchantID", promoter.MerchantID),
		zap.Int("records", len(decision.PayoutIDs)),
		zap.Int64("amount", decision.PendingTotal))
	return s.executor.Settle(ctx, promoter, decision.PayoutIDs), nil
}

// RetryFailed re-runs a FAILED record and returns its resulting status.
func (s *Service) RetryFailed(ctx context.Context, payoutID string) (domain.PayoutStatus, error) {
	rec, err := s.ledger.Get(ctx, payoutID)
	if err != nil {
		return "", err
	}
	if rec.Status != domain.StatusFailed {
		return rec.Status, fmt.Errorf("%w: payout %s is %s", domain.ErrInvalidTransition, payoutID, rec.Status)
	}

	promoter, err := s.promoter(ctx, rec.PromoterID)
	if err != nil {
		return rec.Status, err
	}

	updated, err := s.executor.Retry(ctx, promoter, payoutID)
	if updated == nil {
		return rec.Status, err
	}
	return updated.Status, err
}

func (s *Service) ListPayouts(ctx context.Context, promoterID string) ([]domain.PayoutRecord, error) {
	return s.ledger.List(ctx, promoterID)
}

func (s *Service) GetPayout(ctx context.Context, payoutID string) (*domain.PayoutRecord, []domain.PayoutTransition, error) {
	rec, err := s.ledger.Get(ctx, payoutID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.ledger.History(ctx, payoutID)
	if err != nil {
		return nil, nil, err
	}
	return rec, history, nil
}

func (s *Service) DuePromoters(ctx context.Context) ([]string, error) {
	return s.ledger.PromotersWithPending(ctx, s.batchLimit)
}

// RecoverStale fails PROCESSING records whose outcome was never written,
// so they can be retried under the same idempotency key.
func (s *Service) RecoverStale(ctx context.Context) (int, error) {
	stale, err := s.ledger.Stale(ctx, s.staleAfter, s.batchLimit)
	if err != nil {
		return 0, err
	}

	reason := domain.ReasonAbandoned
	recovered := 0
	for _, rec := range stale {
		_, err := s.ledger.Transition(ctx, rec.ID, domain.StatusFailed, domain.StatusChange{
			From:          []domain.PayoutStatus{domain.StatusProcessing},
			FailureReason: &reason,
		})
		if err != nil {
			zap.L().Warn("failed to recover stale payout", zap.String("payoutID", rec.ID), zap.Error(err))
			continue
		}
		recovered++
	}
	return recovered, nil
}

func (s *Service) promoter(ctx context.Context, id string) (*domain.PromoterAccount, error) {
	promoter, err := s.promoters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promoter == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPromoterNotFound, id)
	}
	return promoter, nil
}
