package payouts

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/internal/dto"
	"github.com/GlebRadaev/payoutengine/pkg/auth"
	"github.com/GlebRadaev/payoutengine/pkg/utils"
)

//go:generate mockgen -source=payouts.go -destination=mock_payouts.go -package=payouts

type Service interface {
	ListPayouts(ctx context.Context, promoterID string) ([]domain.PayoutRecord, error)
	GetPayout(ctx context.Context, payoutID string) (*domain.PayoutRecord, []domain.PayoutTransition, error)
	EvaluateAndSettle(ctx context.Context, promoterID string) (*domain.SettlementResult, error)
	RetryFailed(ctx context.Context, payoutID string) (domain.PayoutStatus, error)
}

type PayoutHandler struct {
	payoutService Service
}

func New(payoutService Service) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
	}
}

// GetPromoterPayouts godoc
//
//	@Summary		List promoter payouts
//	@Description	Returns every payout record of the promoter, newest first.
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			promoterID	path		string					true	"Promoter ID"
//	@Success		200			{array}		dto.PayoutResponseDTO	"Payout records"
//	@Success		204			{object}	utils.Response			"No payouts"
//	@Failure		401			{object}	utils.Response			"Operator not authorized"
//	@Failure		500			{object}	utils.Response			"Internal server error"
//	@Router			/api/payouts/promoters/{promoterID} [get]
func (h *PayoutHandler) GetPromoterPayouts(w http.ResponseWriter, r *http.Request) {
	promoterID := chi.URLParam(r, "promoterID")

	records, err := h.payoutService.ListPayouts(r.Context(), promoterID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(records) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}

	response := make([]dto.PayoutResponseDTO, 0, len(records))
	for _, rec := range records {
		response = append(response, dto.NewPayoutResponse(rec))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPayout godoc
//
//	@Summary		Get payout
//	@Description	Returns a payout record with its status history.
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			payoutID	path		string						true	"Payout ID"
//	@Success		200			{object}	dto.PayoutDetailsResponseDTO	"Payout record"
//	@Failure		401			{object}	utils.Response				"Operator not authorized"
//	@Failure		404			{object}	utils.Response				"Payout not found"
//	@Failure		500			{object}	utils.Response				"Internal server error"
//	@Router			/api/payouts/{payoutID} [get]
func (h *PayoutHandler) GetPayout(w http.ResponseWriter, r *http.Request) {
	payoutID := chi.URLParam(r, "payoutID")

	rec, history, err := h.payoutService.GetPayout(r.Context(), payoutID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPayoutNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Payout not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPayoutDetailsResponse(*rec, history))
}

// Settle godoc
//
//	@Summary		Settle promoter
//	@Description	Pays out the promoter's PENDING commissions when the merchant policy says they are due.
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			promoterID	path		string					true	"Promoter ID"
//	@Success		200			{object}	dto.SettleResponseDTO	"Settlement result"
//	@Failure		401			{object}	utils.Response			"Operator not authorized"
//	@Failure		404			{object}	utils.Response			"Promoter not found"
//	@Failure		500			{object}	utils.Response			"Internal server error"
//	@Router			/api/payouts/promoters/{promoterID}/settle [post]
func (h *PayoutHandler) Settle(w http.ResponseWriter, r *http.Request) {
	promoterID := chi.URLParam(r, "promoterID")

	result, err := h.payoutService.EvaluateAndSettle(r.Context(), promoterID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPromoterNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Promoter not found")
		default:
			zap.L().Error("settlement failed", zap.String("promoterID", promoterID), zap.Error(err))
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	zap.L().Info("manual settlement",
		zap.String("operator", auth.Operator(r.Context())),
		zap.String("promoterID", promoterID),
		zap.Int("settled", len(result.Settled)),
		zap.Int("failed", len(result.Failed)))
	utils.RespondWithJSON(w, http.StatusOK, dto.NewSettleResponse(result))
}

// Retry godoc
//
//	@Summary		Retry failed payout
//	@Description	Sends a FAILED payout to the transfer provider again under its original idempotency key.
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			payoutID	path		string					true	"Payout ID"
//	@Success		200			{object}	dto.RetryResponseDTO	"Status after the retry"
//	@Failure		401			{object}	utils.Response			"Operator not authorized"
//	@Failure		404			{object}	utils.Response			"Payout or promoter not found"
//	@Failure		409			{object}	utils.Response			"Payout is not FAILED"
//	@Failure		500			{object}	utils.Response			"Internal server error"
//	@Router			/api/payouts/{payoutID}/retry [post]
func (h *PayoutHandler) Retry(w http.ResponseWriter, r *http.Request) {
	payoutID := chi.URLParam(r, "payoutID")

	status, err := h.payoutService.RetryFailed(r.Context(), payoutID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPayoutNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Payout not found")
		case errors.Is(err, domain.ErrPromoterNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Promoter not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case status == domain.StatusFailed && (errors.Is(err, domain.ErrProvider) || errors.Is(err, domain.ErrNoDestination)):
			// the retry ran and failed again; the record carries the reason
			utils.RespondWithJSON(w, http.StatusOK, dto.RetryResponseDTO{PayoutID: payoutID, Status: string(status)})
		default:
			zap.L().Error("payout retry failed", zap.String("payoutID", payoutID), zap.Error(err))
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	zap.L().Info("payout retried",
		zap.String("operator", auth.Operator(r.Context())),
		zap.String("payoutID", payoutID),
		zap.String("status", string(status)))
	utils.RespondWithJSON(w, http.StatusOK, dto.RetryResponseDTO{PayoutID: payoutID, Status: string(status)})
}
