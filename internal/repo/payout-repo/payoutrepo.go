package payoutrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/internal/pg"
	"github.com/GlebRadaev/payoutengine/pkg/money"
)

const payoutColumns = `id, merchant_id, promoter_id, order_id, discount_code,
	original_amount_cents, discounted_amount_cents, commission_rate_bps, commission_amount_cents,
	status, transfer_id, failure_reason, attempts, created_at, processed_at, updated_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Insert stores a new PENDING record. When a record with the same
// (merchant, order, discount code) already exists nothing is written,
// rec is filled from the stored row and created is false.
func (r *Repository) Insert(ctx context.Context, rec *domain.PayoutRecord) (bool, error) {
	query := `
        INSERT INTO payout_records (id, merchant_id, promoter_id, order_id, discount_code,
            original_amount_cents, discounted_amount_cents, commission_rate_bps, commission_amount_cents,
            status, attempts, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $11)
        ON CONFLICT ON CONSTRAINT payout_records_idempotency_key DO NOTHING
        RETURNING id
    `
	var id string
	err := r.db.QueryRow(ctx, query,
		rec.ID, rec.MerchantID, rec.PromoterID, rec.OrderID, rec.DiscountCode,
		rec.OriginalAmount, rec.DiscountedAmount, money.RateToBps(rec.CommissionRate), rec.CommissionAmount,
		string(rec.Status), rec.CreatedAt,
	).Scan(&id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		zap.L().Error("can't insert payout record", zap.Error(err))
		return false, err
	}

	existing, err := r.FindByKey(ctx, rec.MerchantID, rec.OrderID, rec.DiscountCode)
	if err != nil {
		return false, err
	}
	if existing == nil {
		// the conflicting row is not visible yet; the caller retries the whole event
		return false, domain.ErrLedgerWriteConflict
	}
	*rec = *existing
	return false, nil
}

func (r *Repository) FindByKey(ctx context.Context, merchantID, orderID, code string) (*domain.PayoutRecord, error) {
	query := `
        SELECT ` + payoutColumns + `
        FROM payout_records
        WHERE merchant_id = $1 AND order_id = $2 AND discount_code = $3
    `
	rec, err := scanPayout(r.db.QueryRow(ctx, query, merchantID, orderID, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payout record by key", zap.Error(err))
		return nil, err
	}
	return rec, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.PayoutRecord, error) {
	query := `
        SELECT ` + payoutColumns + `
        FROM payout_records
        WHERE id = $1
    `
	rec, err := scanPayout(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payout record", zap.Error(err))
		return nil, err
	}
	return rec, nil
}

func (r *Repository) FindByPromoter(ctx context.Context, promoterID string) ([]domain.PayoutRecord, error) {
	query := `
        SELECT ` + payoutColumns + `
        FROM payout_records
        WHERE promoter_id = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, promoterID)
}

func (r *Repository) FindByPromoterAndStatus(ctx context.Context, promoterID string, status domain.PayoutStatus) ([]domain.PayoutRecord, error) {
	query := `
        SELECT ` + payoutColumns + `
        FROM payout_records
        WHERE promoter_id = $1 AND status = $2
        ORDER BY created_at ASC
    `
	return r.list(ctx, query, promoterID, string(status))
}

func (r *Repository) FindStaleProcessing(ctx context.Context, before time.Time, limit uint32) ([]domain.PayoutRecord, error) {
	query := `
        SELECT ` + payoutColumns + `
        FROM payout_records
        WHERE status = 'PROCESSING' AND updated_at < $1
        ORDER BY updated_at ASC
        LIMIT $2
    `
	return r.list(ctx, query, before, int(limit))
}

func (r *Repository) FindPromotersWithPending(ctx context.Context, limit uint32) ([]string, error) {
	query := `
        SELECT promoter_id
        FROM payout_records
        WHERE status = 'PENDING'
        GROUP BY promoter_id
        ORDER BY MIN(created_at) ASC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get promoters with pending payouts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("can't scan promoter id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateStatus moves a record from one status to another only if it is
// still in the from status. A lost race returns domain.ErrLedgerWriteConflict.
// The audit row is written in the same transaction.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.PayoutStatus, upd domain.StatusUpdate) (*domain.PayoutRecord, error) {
	query := `
        UPDATE payout_records
        SET status = $3,
            transfer_id = COALESCE($4, transfer_id),
            failure_reason = $5,
            attempts = attempts + $6,
            processed_at = $7,
            updated_at = $8
        WHERE id = $1 AND status = $2
        RETURNING ` + payoutColumns
	audit := `
        INSERT INTO payout_transitions (payout_id, from_status, to_status, reason, at)
        VALUES ($1, $2, $3, $4, $5)
    `
	attempt := 0
	if to == domain.StatusProcessing {
		attempt = 1
	}

	var updated *domain.PayoutRecord
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		rec, err := scanPayout(r.db.QueryRow(ctx, query,
			id, string(from), string(to), upd.TransferID, upd.FailureReason, attempt, upd.ProcessedAt, upd.At,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrLedgerWriteConflict
		}
		if err != nil {
			zap.L().Error("can't update payout status", zap.String("payoutID", id), zap.Error(err))
			return err
		}
		if _, err := r.db.Exec(ctx, audit, id, string(from), string(to), upd.FailureReason, upd.At); err != nil {
			zap.L().Error("can't write payout transition", zap.String("payoutID", id), zap.Error(err))
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FindTransitions returns the audit trail of a record, oldest first.
func (r *Repository) FindTransitions(ctx context.Context, payoutID string) ([]domain.PayoutTransition, error) {
	query := `
        SELECT payout_id, from_status, to_status, reason, at
        FROM payout_transitions
        WHERE payout_id = $1
        ORDER BY at ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query, payoutID)
	if err != nil {
		zap.L().Error("can't get payout transitions", zap.String("payoutID", payoutID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transitions []domain.PayoutTransition
	for rows.Next() {
		var (
			t        domain.PayoutTransition
			from, to string
		)
		if err = rows.Scan(&t.PayoutID, &from, &to, &t.Reason, &t.At); err != nil {
			zap.L().Error("can't scan payout transition", zap.Error(err))
			return nil, err
		}
		if t.From, err = domain.ParseStatus(from); err != nil {
			return nil, err
		}
		if t.To, err = domain.ParseStatus(to); err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}
	return transitions, rows.Err()
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.PayoutRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get payout records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var records []domain.PayoutRecord
	for rows.Next() {
		rec, err := scanPayout(rows)
		if err != nil {
			zap.L().Error("can't scan payout record row", zap.Error(err))
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func scanPayout(row pgx.Row) (*domain.PayoutRecord, error) {
	var (
		rec    domain.PayoutRecord
		bps    int64
		status string
	)
	err := row.Scan(
		&rec.ID, &rec.MerchantID, &rec.PromoterID, &rec.OrderID, &rec.DiscountCode,
		&rec.OriginalAmount, &rec.DiscountedAmount, &bps, &rec.CommissionAmount,
		&status, &rec.TransferID, &rec.FailureReason, &rec.Attempts, &rec.CreatedAt, &rec.ProcessedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.CommissionRate = money.RateFromBps(bps)
	if rec.Status, err = domain.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("payout %s: %w", rec.ID, err)
	}
	return &rec, nil
}
