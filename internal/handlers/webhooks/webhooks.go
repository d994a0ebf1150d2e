package webhooks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
	"github.com/GlebRadaev/payoutengine/internal/dto"
	"github.com/GlebRadaev/payoutengine/internal/service/intakeservice"
	"github.com/GlebRadaev/payoutengine/pkg/utils"
)

//go:generate mockgen -source=webhooks.go -destination=mock_webhooks.go -package=webhooks

type Service interface {
	HandleOrderCreated(ctx context.Context, event domain.OrderEvent) (*domain.IntakeResult, error)
}

type WebhookHandler struct {
	intakeService Service
	validate      *validator.Validate
}

func New(intakeService Service) *WebhookHandler {
	return &WebhookHandler{
		intakeService: intakeService,
		validate:      validator.New(),
	}
}

// OrderCreated godoc
//
//	@Summary		Order created webhook
//	@Description	Records a PENDING commission for every discount code of the order that belongs to a promoter. Redelivery of the same order is safe.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.OrderCreatedRequestDTO	true	"Verified order event"
//	@Success		200		{object}	dto.IntakeResponseDTO		"Event processed"
//	@Failure		400		{object}	utils.Response				"Invalid event"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Failure		503		{object}	dto.IntakeResponseDTO		"Partially processed, redeliver later"
//	@Router			/api/webhooks/orders [post]
func (h *WebhookHandler) OrderCreated(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderCreatedRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.intakeService.HandleOrderCreated(r.Context(), req.ToEvent())
	if err != nil {
		switch {
		case errors.Is(err, intakeservice.ErrInvalidEvent):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			zap.L().Error("order event failed", zap.String("orderID", req.OrderID), zap.Error(err))
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	status := http.StatusOK
	if result.Retryable {
		status = http.StatusServiceUnavailable
	}
	utils.RespondWithJSON(w, status, dto.NewIntakeResponse(result))
}
