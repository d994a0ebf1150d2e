package payoutservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

type mocks struct {
	ledger    *MockLedger
	promoters *MockPromoterRepo
	policies  *MockPolicies
	executor  *MockExecutor
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		ledger:    NewMockLedger(ctrl),
		promoters: NewMockPromoterRepo(ctrl),
		policies:  NewMockPolicies(ctrl),
		executor:  NewMockExecutor(ctrl),
	}
	service := New(m.ledger, m.promoters, m.policies, m.executor, 10*time.Minute)
	return service, m
}

var promoter = &domain.PromoterAccount{ID: "promo-1", MerchantID: "shop-1", Active: true}

func TestEvaluateAndSettle(t *testing.T) {
	policy := &domain.MerchantPayoutPolicy{MerchantID: "shop-1", AutoPayout: true, MinimumPayout: 5000}

	tests := []struct {
		name        string
		prepareMock func(m *mocks)
		expected    *domain.SettlementResult
		expectErr   error
	}{
		{
			name: "Due promoter is settled",
			prepareMock: func(m *mocks) {
				m.promoters.EXPECT().FindByID(gomock.Any(), "promo-1").Return(promoter, nil)
				m.policies.EXPECT().GetPolicy(gomock.Any(), "shop-1").Return(policy, nil)
				m.policies.EXPECT().Evaluate(gomock.Any(), policy, "promo-1").
					Return(&domain.SettlementDecision{Settle: true, PayoutIDs: []string{"p1", "p2"}, PendingTotal: 5300}, nil)
				m.executor.EXPECT().Settle(gomock.Any(), promoter, []string{"p1", "p2"}).
					Return(&domain.SettlementResult{Settled: []string{"p1"}, Failed: []string{"p2"}})
			},
			expected: &domain.SettlementResult{Settled: []string{"p1"}, Failed: []string{"p2"}},
		},
		{
			name: "Below minimum does nothing",
			prepareMock: func(m *mocks) {
				m.promoters.EXPECT().FindByID(gomock.Any(), "promo-1").Return(promoter, nil)
				m.policies.EXPECT().GetPolicy(gomock.Any(), "shop-1").Return(policy, nil)
				m.policies.EXPECT().Evaluate(gomock.Any(), policy, "promo-1").
					Return(&domain.SettlementDecision{PendingTotal: 100}, nil)
			},
			expected: &domain.SettlementResult{},
		},
		{
			name: "Unknown promoter",
			prepareMock: func(m *mocks) {
				m.promoters.EXPECT().FindByID(gomock.Any(), "promo-1").Return(nil, nil)
			},
			expectErr: domain.ErrPromoterNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			result, err := service.EvaluateAndSettle(context.Background(), "promo-1")
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRetryFailed(t *testing.T) {
	failed := &domain.PayoutRecord{ID: "p1", PromoterID: "promo-1", Status: domain.StatusFailed}

	tests := []struct {
		name        string
		prepareMock func(m *mocks)
		expected    domain.PayoutStatus
		expectErr   error
	}{
		{
			name: "Failed record completes",
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().Get(gomock.Any(), "p1").Return(failed, nil)
				m.promoters.EXPECT().FindByID(gomock.Any(), "promo-1").Return(promoter, nil)
				m.executor.EXPECT().Retry(gomock.Any(), promoter, "p1").
					Return(&domain.PayoutRecord{ID: "p1", Status: domain.StatusCompleted}, nil)
			},
			expected: domain.StatusCompleted,
		},
		{
			name: "Retry fails again",
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().Get(gomock.Any(), "p1").Return(failed, nil)
				m.promoters.EXPECT().FindByID(gomock.Any(), "promo-1").Return(promoter, nil)
				m.executor.EXPECT().Retry(gomock.Any(), promoter, "p1").
					Return(&domain.PayoutRecord{ID: "p1", Status: domain.StatusFailed}, domain.ErrNoDestination)
			},
			expected:  domain.StatusFailed,
			expectErr: domain.ErrNoDestination,
		},
		{
			name: "Completed record cannot be retried",
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().Get(gomock.Any(), "p1").
					Return(&domain.PayoutRecord{ID: "p1", PromoterID: "promo-1", Status: domain.StatusCompleted}, nil)
			},
			expected:  domain.StatusCompleted,
			expectErr: domain.ErrInvalidTransition,
		},
		{
			name: "Unknown record",
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().Get(gomock.Any(), "p1").Return(nil, domain.ErrPayoutNotFound)
			},
			expectErr: domain.ErrPayoutNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			status, err := service.RetryFailed(context.Background(), "p1")
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestGetPayout(t *testing.T) {
	service, m := NewMock(t)
	rec := &domain.PayoutRecord{ID: "p1", Status: domain.StatusCompleted}
	history := []domain.PayoutTransition{{PayoutID: "p1", From: domain.StatusPending, To: domain.StatusProcessing}}

	m.ledger.EXPECT().Get(gomock.Any(), "p1").Return(rec, nil)
	m.ledger.EXPECT().History(gomock.Any(), "p1").Return(history, nil)

	gotRec, gotHistory, err := service.GetPayout(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, rec, gotRec)
	assert.Equal(t, history, gotHistory)
}

func TestRecoverStale(t *testing.T) {
	service, m := NewMock(t)
	stale := []domain.PayoutRecord{{ID: "p1"}, {ID: "p2"}}

	m.ledger.EXPECT().Stale(gomock.Any(), 10*time.Minute, uint32(1000)).Return(stale, nil)
	m.ledger.EXPECT().Transition(gomock.Any(), "p1", domain.StatusFailed, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ domain.PayoutStatus, change domain.StatusChange) (*domain.PayoutRecord, error) {
			assert.Equal(t, []domain.PayoutStatus{domain.StatusProcessing}, change.From)
			assert.Equal(t, domain.ReasonAbandoned, *change.FailureReason)
			return &domain.PayoutRecord{ID: "p1", Status: domain.StatusFailed}, nil
		})
	m.ledger.EXPECT().Transition(gomock.Any(), "p2", domain.StatusFailed, gomock.Any()).
		Return(nil, domain.ErrInvalidTransition)

	recovered, err := service.RecoverStale(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, recovered)
}

func TestRecoverStale_LedgerError(t *testing.T) {
	service, m := NewMock(t)
	m.ledger.EXPECT().Stale(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	_, err := service.RecoverStale(context.Background())
	assert.EqualError(t, err, "db error")
}

func TestDuePromoters(t *testing.T) {
	service, m := NewMock(t)
	m.ledger.EXPECT().PromotersWithPending(gomock.Any(), uint32(1000)).Return([]string{"promo-1"}, nil)

	ids, err := service.DuePromoters(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"promo-1"}, ids)
}

func TestListPayouts(t *testing.T) {
	service, m := NewMock(t)
	records := []domain.PayoutRecord{{ID: "payout-2"}, {ID: "payout-1"}}
	m.ledger.EXPECT().List(gomock.Any(), "promo-1").Return(records, nil)

	result, err := service.ListPayouts(context.Background(), "promo-1")
	assert.NoError(t, err)
	assert.Equal(t, records, result)
}
