package policyrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestRepository_GetPolicy(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("FROM merchant_payout_policies WHERE merchant_id = $1")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.MerchantPayoutPolicy
	}{
		{
			name: "Policy configured",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("shop-1").
					WillReturnRows(pgxmock.NewRows([]string{"merchant_id", "auto_payout", "minimum_payout_cents", "calculation_base"}).
						AddRow("shop-1", true, int64(5000), "ORIGINAL_AMOUNT"))
			},
			result: &domain.MerchantPayoutPolicy{
				MerchantID:      "shop-1",
				AutoPayout:      true,
				MinimumPayout:   5000,
				CalculationBase: domain.BaseOriginalAmount,
			},
		},
		{
			name: "No policy row",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("shop-1").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("shop-1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetPolicy(context.Background(), "shop-1")
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}
