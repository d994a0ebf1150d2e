package payouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/internal/dto"
)

func NewMock(t *testing.T) (*PayoutHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp["message"]
}

func TestGetPromoterPayoutsHandler(t *testing.T) {
	handler, service := NewMock(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	transferID := "tr_1"

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		check        func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Payouts returned",
			prepareMock: func() {
				service.EXPECT().ListPayouts(gomock.Any(), "promo-1").Return([]domain.PayoutRecord{{
					ID:               "payout-1",
					MerchantID:       "shop-1",
					PromoterID:       "promo-1",
					OrderID:          "order-1",
					DiscountCode:     "ALICE10",
					OriginalAmount:   10000,
					DiscountedAmount: 8000,
					CommissionRate:   decimal.NewFromInt(10),
					CommissionAmount: 800,
					Status:           domain.StatusCompleted,
					TransferID:       &transferID,
					Attempts:         1,
					CreatedAt:        now,
					ProcessedAt:      &now,
				}}, nil)
			},
			expectedCode: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []dto.PayoutResponseDTO
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.Len(t, resp, 1)
				assert.Equal(t, "payout-1", resp[0].ID)
				assert.Equal(t, "COMPLETED", resp[0].Status)
				assert.True(t, resp[0].CommissionAmount.Equal(decimal.NewFromInt(8)))
				assert.True(t, resp[0].DiscountedAmount.Equal(decimal.NewFromInt(80)))
				assert.Equal(t, &transferID, resp[0].TransferID)
			},
		},
		{
			name: "No payouts",
			prepareMock: func() {
				service.EXPECT().ListPayouts(gomock.Any(), "promo-1").Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Ledger unavailable",
			prepareMock: func() {
				service.EXPECT().ListPayouts(gomock.Any(), "promo-1").Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Internal server error", decodeMessage(t, rec))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := withParam(httptest.NewRequest(http.MethodGet, "/api/payouts/promoters/promo-1", nil), "promoterID", "promo-1")
			rec := httptest.NewRecorder()

			handler.GetPromoterPayouts(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}

func TestGetPayoutHandler(t *testing.T) {
	handler, service := NewMock(t)
	now := time.Now().UTC()
	reason := domain.ReasonProviderTimeout

	t.Run("Payout with history", func(t *testing.T) {
		service.EXPECT().GetPayout(gomock.Any(), "payout-1").Return(
			&domain.PayoutRecord{ID: "payout-1", Status: domain.StatusFailed, FailureReason: &reason},
			[]domain.PayoutTransition{
				{PayoutID: "payout-1", From: domain.StatusPending, To: domain.StatusProcessing, At: now},
				{PayoutID: "payout-1", From: domain.StatusProcessing, To: domain.StatusFailed, Reason: &reason, At: now},
			}, nil)

		req := withParam(httptest.NewRequest(http.MethodGet, "/api/payouts/payout-1", nil), "payoutID", "payout-1")
		rec := httptest.NewRecorder()
		handler.GetPayout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.PayoutDetailsResponseDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "FAILED", resp.Status)
		require.Len(t, resp.Transitions, 2)
		assert.Equal(t, "PROCESSING", resp.Transitions[1].From)
		assert.Equal(t, &reason, resp.Transitions[1].Reason)
	})

	t.Run("Unknown payout", func(t *testing.T) {
		service.EXPECT().GetPayout(gomock.Any(), "missing").
			Return(nil, nil, fmt.Errorf("%w: missing", domain.ErrPayoutNotFound))

		req := withParam(httptest.NewRequest(http.MethodGet, "/api/payouts/missing", nil), "payoutID", "missing")
		rec := httptest.NewRecorder()
		handler.GetPayout(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Payout not found", decodeMessage(t, rec))
	})
}

func TestSettleHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody *dto.SettleResponseDTO
	}{
		{
			name: "Promoter settled",
			prepareMock: func() {
				service.EXPECT().EvaluateAndSettle(gomock.Any(), "promo-1").
					Return(&domain.SettlementResult{Settled: []string{"payout-1"}, Failed: []string{"payout-2"}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.SettleResponseDTO{Settled: []string{"payout-1"}, Failed: []string{"payout-2"}},
		},
		{
			name: "Nothing due",
			prepareMock: func() {
				service.EXPECT().EvaluateAndSettle(gomock.Any(), "promo-1").Return(&domain.SettlementResult{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.SettleResponseDTO{Settled: []string{}, Failed: []string{}},
		},
		{
			name: "Unknown promoter",
			prepareMock: func() {
				service.EXPECT().EvaluateAndSettle(gomock.Any(), "promo-1").
					Return(nil, fmt.Errorf("%w: promo-1", domain.ErrPromoterNotFound))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Policy store unavailable",
			prepareMock: func() {
				service.EXPECT().EvaluateAndSettle(gomock.Any(), "promo-1").Return(nil, errors.New("timeout"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := withParam(httptest.NewRequest(http.MethodPost, "/api/payouts/promoters/promo-1/settle", nil), "promoterID", "promo-1")
			rec := httptest.NewRecorder()

			handler.Settle(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedBody != nil {
				var resp dto.SettleResponseDTO
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, *tt.expectedBody, resp)
			}
		})
	}
}

func TestRetryHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name           string
		prepareMock    func()
		expectedCode   int
		expectedStatus string
	}{
		{
			name: "Retry completes the payout",
			prepareMock: func() {
				service.EXPECT().RetryFailed(gomock.Any(), "payout-1").Return(domain.StatusCompleted, nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "COMPLETED",
		},
		{
			name: "Provider declines again",
			prepareMock: func() {
				service.EXPECT().RetryFailed(gomock.Any(), "payout-1").
					Return(domain.StatusFailed, &domain.ProviderError{Code: "balance_insufficient", Err: errors.New("declined")})
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "FAILED",
		},
		{
			name: "Destination still missing",
			prepareMock: func() {
				service.EXPECT().RetryFailed(gomock.Any(), "payout-1").Return(domain.StatusFailed, domain.ErrNoDestination)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "FAILED",
		},
		{
			name: "Payout is not failed",
			prepareMock: func() {
				service.EXPECT().RetryFailed(gomock.Any(), "payout-1").
					Return(domain.StatusCompleted, fmt.Errorf("%w: payout payout-1 is COMPLETED", domain.ErrInvalidTransition))
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Unknown payout",
			prepareMock: func() {
				service.EXPECT().RetryFailed(gomock.Any(), "payout-1").Return(domain.PayoutStatus(""), domain.ErrPayoutNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Ledger write conflict",
			prepareMock: func() {
				service.EXPECT().RetryFailed(gomock.Any(), "payout-1").Return(domain.StatusFailed, domain.ErrLedgerWriteConflict)
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := withParam(httptest.NewRequest(http.MethodPost, "/api/payouts/payout-1/retry", nil), "payoutID", "payout-1")
			rec := httptest.NewRecorder()

			handler.Retry(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedStatus != "" {
				var resp dto.RetryResponseDTO
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "payout-1", resp.PayoutID)
				assert.Equal(t, tt.expectedStatus, resp.Status)
			}
		})
	}
}
