package policyrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// GetPolicy returns nil when the merchant has no policy row.
func (r *Repository) GetPolicy(ctx context.Context, merchantID string) (*domain.MerchantPayoutPolicy, error) {
	query := `
        SELECT merchant_id, auto_payout, minimum_payout_cents, calculation_base
        FROM merchant_payout_policies
        WHERE merchant_id = $1
    `
	var (
		policy domain.MerchantPayoutPolicy
		base   string
	)
	err := r.db.QueryRow(ctx, query, merchantID).Scan(&policy.MerchantID, &policy.AutoPayout, &policy.MinimumPayout, &base)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to get payout policy", zap.String("merchantID", merchantID), zap.Error(err))
		return nil, err
	}
	policy.CalculationBase = domain.CalculationBase(base)
	return &policy, nil
}
