package ledgerservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/pkg/events"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockPublisher) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	publisher := NewMockPublisher(ctrl)
	service := New(repo, publisher, 3)
	service.retryBase = time.Millisecond
	service.now = func() time.Time { return now }
	return service, repo, publisher
}

func payout(status domain.PayoutStatus) *domain.PayoutRecord {
	return &domain.PayoutRecord{
		ID:               "payout-1",
		MerchantID:       "shop-1",
		PromoterID:       "promo-1",
		OrderID:          "order-1",
		DiscountCode:     "ALICE10",
		CommissionAmount: 800,
		Status:           status,
	}
}

func TestRecord(t *testing.T) {
	t.Run("New record publishes an event", func(t *testing.T) {
		service, repo, publisher := NewMock(t)
		rec := payout(domain.StatusPending)
		repo.EXPECT().Insert(gomock.Any(), rec).Return(true, nil)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event events.PayoutEvent) error {
			assert.Equal(t, events.TypePayoutCreated, event.Type)
			assert.Equal(t, "payout-1", event.PayoutID)
			assert.Equal(t, int64(800), event.CommissionAmount)
			return nil
		})

		created, err := service.Record(context.Background(), rec)
		assert.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("Duplicate delivery publishes nothing", func(t *testing.T) {
		service, repo, _ := NewMock(t)
		rec := payout(domain.StatusPending)
		repo.EXPECT().Insert(gomock.Any(), rec).Return(false, nil)

		created, err := service.Record(context.Background(), rec)
		assert.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("Repository error", func(t *testing.T) {
		service, repo, _ := NewMock(t)
		rec := payout(domain.StatusPending)
		repo.EXPECT().Insert(gomock.Any(), rec).Return(false, errors.New("db error"))

		_, err := service.Record(context.Background(), rec)
		assert.EqualError(t, err, "db error")
	})
}

func TestGet(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusFailed), nil)
	rec, err := service.Get(context.Background(), "payout-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, rec.Status)

	repo.EXPECT().FindByID(gomock.Any(), "missing").Return(nil, nil)
	_, err = service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPayoutNotFound)
}

func TestStale(t *testing.T) {
	service, repo, _ := NewMock(t)
	repo.EXPECT().FindStaleProcessing(gomock.Any(), now.Add(-10*time.Minute), uint32(50)).Return(nil, nil)

	records, err := service.Stale(context.Background(), 10*time.Minute, 50)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestTransition(t *testing.T) {
	transferID := "tr_1"

	tests := []struct {
		name        string
		to          domain.PayoutStatus
		change      domain.StatusChange
		prepareMock func(repo *MockRepo, publisher *MockPublisher)
		expectErr   error
		expected    domain.PayoutStatus
	}{
		{
			name:   "Pending record starts processing",
			to:     domain.StatusProcessing,
			change: domain.StatusChange{From: []domain.PayoutStatus{domain.StatusPending}},
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusPending), nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), "payout-1", domain.StatusPending, domain.StatusProcessing,
					domain.StatusUpdate{At: now}).Return(payout(domain.StatusProcessing), nil)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
			expected: domain.StatusProcessing,
		},
		{
			name:   "Completion stores transfer id and processed time",
			to:     domain.StatusCompleted,
			change: domain.StatusChange{TransferID: &transferID},
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusProcessing), nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), "payout-1", domain.StatusProcessing, domain.StatusCompleted, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _, _ domain.PayoutStatus, upd domain.StatusUpdate) (*domain.PayoutRecord, error) {
						assert.Equal(t, &transferID, upd.TransferID)
						require.NotNil(t, upd.ProcessedAt)
						assert.Equal(t, now, *upd.ProcessedAt)
						return payout(domain.StatusCompleted), nil
					})
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event events.PayoutEvent) error {
					assert.Equal(t, events.TypePayoutCompleted, event.Type)
					return nil
				})
			},
			expected: domain.StatusCompleted,
		},
		{
			name: "Conflict is retried with a fresh read",
			to:   domain.StatusFailed,
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusProcessing), nil).Times(2)
				gomock.InOrder(
					repo.EXPECT().UpdateStatus(gomock.Any(), "payout-1", domain.StatusProcessing, domain.StatusFailed, gomock.Any()).
						Return(nil, domain.ErrLedgerWriteConflict),
					repo.EXPECT().UpdateStatus(gomock.Any(), "payout-1", domain.StatusProcessing, domain.StatusFailed, gomock.Any()).
						Return(payout(domain.StatusFailed), nil),
				)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
			expected: domain.StatusFailed,
		},
		{
			name:   "Fresh read no longer allows the transition",
			to:     domain.StatusProcessing,
			change: domain.StatusChange{From: []domain.PayoutStatus{domain.StatusPending}},
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				gomock.InOrder(
					repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusPending), nil),
					repo.EXPECT().UpdateStatus(gomock.Any(), "payout-1", domain.StatusPending, domain.StatusProcessing, gomock.Any()).
						Return(nil, domain.ErrLedgerWriteConflict),
					repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusProcessing), nil),
				)
			},
			expectErr: domain.ErrInvalidTransition,
		},
		{
			name:   "Failed record is not settled as pending",
			to:     domain.StatusProcessing,
			change: domain.StatusChange{From: []domain.PayoutStatus{domain.StatusPending}},
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusFailed), nil)
			},
			expectErr: domain.ErrInvalidTransition,
		},
		{
			name: "Completed record is terminal",
			to:   domain.StatusProcessing,
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusCompleted), nil)
			},
			expectErr: domain.ErrInvalidTransition,
		},
		{
			name: "Unknown record",
			to:   domain.StatusProcessing,
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(nil, nil)
			},
			expectErr: domain.ErrPayoutNotFound,
		},
		{
			name: "Conflicts exhaust retries",
			to:   domain.StatusFailed,
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusProcessing), nil).Times(4)
				repo.EXPECT().UpdateStatus(gomock.Any(), "payout-1", domain.StatusProcessing, domain.StatusFailed, gomock.Any()).
					Return(nil, domain.ErrLedgerWriteConflict).Times(4)
			},
			expectErr: domain.ErrLedgerWriteConflict,
		},
		{
			name: "Publish failure does not fail the transition",
			to:   domain.StatusProcessing,
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindByID(gomock.Any(), "payout-1").Return(payout(domain.StatusFailed), nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), "payout-1", domain.StatusFailed, domain.StatusProcessing, gomock.Any()).
					Return(payout(domain.StatusProcessing), nil)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			expected: domain.StatusProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, publisher := NewMock(t)
			tt.prepareMock(repo, publisher)

			rec, err := service.Transition(context.Background(), "payout-1", tt.to, tt.change)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, rec)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, rec.Status)
		})
	}
}
