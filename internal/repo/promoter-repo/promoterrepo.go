package promoterrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/internal/pg"
	"github.com/GlebRadaev/payoutengine/pkg/money"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.PromoterAccount, error) {
	query := `
        SELECT id, merchant_id, commission_rate_bps, transfer_destination_id, is_active, created_at
        FROM promoters
        WHERE id = $1
    `
	var (
		promoter domain.PromoterAccount
		bps      int64
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&promoter.ID, &promoter.MerchantID, &bps, &promoter.DestinationID, &promoter.Active, &promoter.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find promoter", zap.String("promoterID", id), zap.Error(err))
		return nil, err
	}
	promoter.CommissionRate = money.RateFromBps(bps)
	return &promoter, nil
}

// FindByCode looks a discount code up by exact match within one merchant and
// returns it together with its owner. Both are nil when the code is unknown.
func (r *Repository) FindByCode(ctx context.Context, merchantID, code string) (*domain.PromoterAccount, *domain.DiscountCode, error) {
	query := `
        SELECT p.id, p.merchant_id, p.commission_rate_bps, p.transfer_destination_id, p.is_active, p.created_at,
               c.code, c.merchant_id, c.promoter_id, c.is_active, c.usage_limit, c.expires_at
        FROM discount_codes c
        JOIN promoters p ON p.id = c.promoter_id AND p.merchant_id = c.merchant_id
        WHERE c.merchant_id = $1 AND c.code = $2
    `
	var (
		promoter domain.PromoterAccount
		dc       domain.DiscountCode
		bps      int64
	)
	err := r.db.QueryRow(ctx, query, merchantID, code).Scan(
		&promoter.ID, &promoter.MerchantID, &bps, &promoter.DestinationID, &promoter.Active, &promoter.CreatedAt,
		&dc.Code, &dc.MerchantID, &dc.PromoterID, &dc.IsActive, &dc.UsageLimit, &dc.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		zap.L().Error("can't find discount code", zap.String("merchantID", merchantID), zap.String("code", code), zap.Error(err))
		return nil, nil, err
	}
	promoter.CommissionRate = money.RateFromBps(bps)
	return &promoter, &dc, nil
}
