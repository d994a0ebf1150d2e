package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/pkg/events"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

type Repo interface {
	Insert(ctx context.Context, rec *domain.PayoutRecord) (bool, error)
	FindByID(ctx context.Context, id string) (*domain.PayoutRecord, error)
	FindByPromoter(ctx context.Context, promoterID string) ([]domain.PayoutRecord, error)
	FindByPromoterAndStatus(ctx context.Context, promoterID string, status domain.PayoutStatus) ([]domain.PayoutRecord, error)
	FindStaleProcessing(ctx context.Context, before time.Time, limit uint32) ([]domain.PayoutRecord, error)
	FindPromotersWithPending(ctx context.Context, limit uint32) ([]string, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.PayoutStatus, upd domain.StatusUpdate) (*domain.PayoutRecord, error)
	FindTransitions(ctx context.Context, payoutID string) ([]domain.PayoutTransition, error)
}

type Publisher interface {
	Publish(ctx context.Context, event events.PayoutEvent) error
}

type Service struct {
	repo       Repo
	publisher  Publisher
	maxRetries uint64
	retryBase  time.Duration
	now        func() time.Time
}

func New(repo Repo, publisher Publisher, maxRetries uint64) *Service {
	return &Service{
		repo:       repo,
		publisher:  publisher,
		maxRetries: maxRetries,
		retryBase:  20 * time.Millisecond,
		now:        time.Now,
	}
}

// Record stores rec as a new PENDING payout. created is false on duplicate
// delivery, in which case rec holds the stored record.
func (s *Service) Record(ctx context.Context, rec *domain.PayoutRecord) (bool, error) {
	created, err := s.repo.Insert(ctx, rec)
	if err != nil {
		zap.L().Error("failed to record payout",
			zap.String("merchantID", rec.MerchantID),
			zap.String("orderID", rec.OrderID),
			zap.String("code", rec.DiscountCode),
			zap.Error(err))
		return false, err
	}
	if created {
		s.publish(ctx, events.TypePayoutCreated, rec)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.PayoutRecord, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrPayoutNotFound
	}
	return rec, nil
}

func (s *Service) History(ctx context.Context, id string) ([]domain.PayoutTransition, error) {
	return s.repo.FindTransitions(ctx, id)
}

func (s *Service) List(ctx context.Context, promoterID string) ([]domain.PayoutRecord, error) {
	return s.repo.FindByPromoter(ctx, promoterID)
}

func (s *Service) Pending(ctx context.Context, promoterID string) ([]domain.PayoutRecord, error) {
	return s.repo.FindByPromoterAndStatus(ctx, promoterID, domain.StatusPending)
}

func (s *Service) PromotersWithPending(ctx context.Context, limit uint32) ([]string, error) {
	return s.repo.FindPromotersWithPending(ctx, limit)
}

// Stale returns PROCESSING records untouched for longer than olderThan.
func (s *Service) Stale(ctx context.Context, olderThan time.Duration, limit uint32) ([]domain.PayoutRecord, error) {
	return s.repo.FindStaleProcessing(ctx, s.now().Add(-olderThan), limit)
}

// Transition moves a record to the given status. The current status is
// re-read on every attempt; a concurrent writer makes the conditional
// update miss and the transition is retried with backoff until the fresh
// status no longer allows it.
func (s *Service) Transition(ctx context.Context, id string, to domain.PayoutStatus, change domain.StatusChange) (*domain.PayoutRecord, error) {
	var (
		from    domain.PayoutStatus
		updated *domain.PayoutRecord
	)
	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(s.retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrPayoutNotFound
		}
		if len(change.From) > 0 && !slices.Contains(change.From, current.Status) {
			return fmt.Errorf("%w: payout %s is %s", domain.ErrInvalidTransition, id, current.Status)
		}
		if !domain.CanTransition(current.Status, to) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, to)
		}

		now := s.now()
		upd := domain.StatusUpdate{
			TransferID:    change.TransferID,
			FailureReason: change.FailureReason,
			At:            now,
		}
		if to.Terminal() || to == domain.StatusFailed {
			upd.ProcessedAt = &now
		}

		rec, err := s.repo.UpdateStatus(ctx, id, current.Status, to, upd)
		if errors.Is(err, domain.ErrLedgerWriteConflict) {
			zap.L().Warn("payout changed concurrently, retrying",
				zap.String("payoutID", id), zap.String("from", string(current.Status)), zap.String("to", string(to)))
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		from = current.Status
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("payout status changed",
		zap.String("payoutID", updated.ID),
		zap.String("merchantID", updated.MerchantID),
		zap.String("orderID", updated.OrderID),
		zap.String("promoterID", updated.PromoterID),
		zap.Int64("amount", updated.CommissionAmount),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	s.publish(ctx, eventType(to), updated)
	return updated, nil
}

func (s *Service) publish(ctx context.Context, eventType string, rec *domain.PayoutRecord) {
	event := events.PayoutEvent{
		Type:             eventType,
		PayoutID:         rec.ID,
		MerchantID:       rec.MerchantID,
		PromoterID:       rec.PromoterID,
		OrderID:          rec.OrderID,
		DiscountCode:     rec.DiscountCode,
		Status:           string(rec.Status),
		CommissionAmount: rec.CommissionAmount,
		TransferID:       rec.TransferID,
		FailureReason:    rec.FailureReason,
		Attempts:         rec.Attempts,
		At:               s.now(),
	}
	// the ledger is the source of truth; a lost event is only logged
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		zap.L().Warn("failed to publish payout event",
			zap.String("payoutID", rec.ID), zap.String("type", eventType), zap.Error(err))
	}
}

func eventType(status domain.PayoutStatus) string {
	switch status {
	case domain.StatusProcessing:
		return events.TypePayoutProcessing
	case domain.StatusCompleted:
		return events.TypePayoutCompleted
	case domain.StatusFailed:
		return events.TypePayoutFailed
	default:
		return events.TypePayoutCreated
	}
}
