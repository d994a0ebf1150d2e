package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/pkg/transfer"
)

//go:generate mockgen -source=executor.go -destination=mock_executor.go -package=settlement

const DefaultTransferTimeout = 5 * time.Second

type Ledger interface {
	Get(ctx context.Context, id string) (*domain.PayoutRecord, error)
	Transition(ctx context.Context, id string, to domain.PayoutStatus, change domain.StatusChange) (*domain.PayoutRecord, error)
}

type Provider interface {
	Transfer(ctx context.Context, req transfer.Request) (string, error)
}

// Executor pays out individual records through the provider. Every record
// it picks up leaves PROCESSING as COMPLETED or FAILED.
type Executor struct {
	ledger   Ledger
	provider Provider
	currency string
	timeout  time.Duration
}

func NewExecutor(ledger Ledger, provider Provider, currency string, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTransferTimeout
	}
	return &Executor{
		ledger:   ledger,
		provider: provider,
		currency: currency,
		timeout:  timeout,
	}
}

// IdempotencyKey is stable for a record across all of its attempts.
func IdempotencyKey(payoutID string) string {
	return "payout-" + payoutID
}

// Settle pays out the given PENDING records one transfer per record.
// A failure on one record never stops the others. A zero-amount record
// completes without a transfer, so it needs no destination account.
func (e *Executor) Settle(ctx context.Context, promoter *domain.PromoterAccount, payoutIDs []string) *domain.SettlementResult {
	result := &domain.SettlementResult{}
	for _, id := range payoutIDs {
		rec, err := e.execute(ctx, promoter, id, domain.StatusPending)
		switch {
		case rec != nil && rec.Status == domain.StatusCompleted:
			result.Settled = append(result.Settled, id)
		case rec != nil && rec.Status == domain.StatusFailed:
			result.Failed = append(result.Failed, id)
		default:
			zap.L().Warn("payout skipped",
				zap.String("payoutID", id), zap.String("promoterID", promoter.ID), zap.Error(err))
			result.Skipped = append(result.Skipped, id)
		}
	}
	return result
}

// Retry runs a FAILED record through the provider again under the same
// idempotency key.
func (e *Executor) Retry(ctx context.Context, promoter *domain.PromoterAccount, payoutID string) (*domain.PayoutRecord, error) {
	return e.execute(ctx, promoter, payoutID, domain.StatusFailed)
}

func (e *Executor) execute(ctx context.Context, promoter *domain.PromoterAccount, id string, from domain.PayoutStatus) (*domain.PayoutRecord, error) {
	rec, err := e.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.PromoterID != promoter.ID {
		return nil, fmt.Errorf("%w: payout %s does not belong to promoter %s", domain.ErrPayoutNotFound, id, promoter.ID)
	}

	rec, err = e.ledger.Transition(ctx, id, domain.StatusProcessing, domain.StatusChange{
		From: []domain.PayoutStatus{from},
	})
	if err != nil {
		return nil, err
	}

	// the record is PROCESSING now, so the outcome is written even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	if rec.CommissionAmount == 0 {
		return e.complete(ctx, rec, nil)
	}
	if !promoter.HasDestination() {
		return e.fail(ctx, rec, domain.ReasonNoDestination, domain.ErrNoDestination)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	transferID, err := e.provider.Transfer(callCtx, transfer.Request{
		DestinationID:  *promoter.DestinationID,
		AmountCents:    rec.CommissionAmount,
		Currency:       e.currency,
		IdempotencyKey: IdempotencyKey(rec.ID),
		Metadata: map[string]string{
			"payout_id":   rec.ID,
			"merchant_id": rec.MerchantID,
			"order_id":    rec.OrderID,
		},
	})
	cancel()
	if err != nil {
		providerErr := toProviderError(callCtx, err)
		return e.fail(ctx, rec, providerErr.Reason(), providerErr)
	}
	return e.complete(ctx, rec, &transferID)
}

func (e *Executor) complete(ctx context.Context, rec *domain.PayoutRecord, transferID *string) (*domain.PayoutRecord, error) {
	done, err := e.ledger.Transition(ctx, rec.ID, domain.StatusCompleted, domain.StatusChange{TransferID: transferID})
	if err != nil {
		fields := []zap.Field{zap.String("payoutID", rec.ID), zap.String("promoterID", rec.PromoterID), zap.Error(err)}
		if transferID != nil {
			fields = append(fields, zap.String("transferID", *transferID))
		}
		zap.L().Error("transfer sent but payout was not marked completed", fields...)
		return rec, err
	}
	return done, nil
}

func (e *Executor) fail(ctx context.Context, rec *domain.PayoutRecord, reason string, cause error) (*domain.PayoutRecord, error) {
	zap.L().Warn("payout failed",
		zap.String("payoutID", rec.ID),
		zap.String("merchantID", rec.MerchantID),
		zap.String("orderID", rec.OrderID),
		zap.String("promoterID", rec.PromoterID),
		zap.Int64("amount", rec.CommissionAmount),
		zap.String("reason", reason),
		zap.Error(cause))

	failed, err := e.ledger.Transition(ctx, rec.ID, domain.StatusFailed, domain.StatusChange{FailureReason: &reason})
	if err != nil {
		zap.L().Error("failed to mark payout failed", zap.String("payoutID", rec.ID), zap.Error(err))
		return rec, errors.Join(cause, err)
	}
	return failed, cause
}

func toProviderError(ctx context.Context, err error) *domain.ProviderError {
	providerErr := &domain.ProviderError{Err: err}
	var transferErr *transfer.Error
	if errors.As(err, &transferErr) {
		providerErr.Code = transferErr.Code
		providerErr.Timeout = transferErr.Timeout
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		providerErr.Timeout = true
	}
	return providerErr
}
