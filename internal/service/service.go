package service

import (
	"github.com/GlebRadaev/payoutengine/internal/config"
	"github.com/GlebRadaev/payoutengine/internal/handlers/payouts"
	"github.com/GlebRadaev/payoutengine/internal/handlers/webhooks"
	"github.com/GlebRadaev/payoutengine/internal/repo"
	"github.com/GlebRadaev/payoutengine/internal/service/attributionservice"
	"github.com/GlebRadaev/payoutengine/internal/service/intakeservice"
	"github.com/GlebRadaev/payoutengine/internal/service/ledgerservice"
	"github.com/GlebRadaev/payoutengine/internal/service/payoutservice"
	"github.com/GlebRadaev/payoutengine/internal/service/policyservice"
	"github.com/GlebRadaev/payoutengine/internal/settlement"
)

type Services struct {
	IntakeService webhooks.Service
	PayoutService payouts.Service
	Settler       settlement.Settler
}

func New(cfg *config.Config, repo *repo.Repositories, publisher ledgerservice.Publisher, provider settlement.Provider) *Services {
	ledgerService := ledgerservice.New(repo.PayoutRepo, publisher, cfg.LedgerRetryAttempts)
	policyService := policyservice.New(repo.PolicyRepo, ledgerService)
	attributionService := attributionservice.New(repo.PromoterRepo)
	executor := settlement.NewExecutor(ledgerService, provider, cfg.PayoutCurrency, cfg.TransferTimeout)
	payoutService := payoutservice.New(ledgerService, repo.PromoterRepo, policyService, executor, cfg.StaleProcessingAfter)
	intakeService := intakeservice.New(attributionService, policyService, ledgerService, payoutService)

	return &Services{
		IntakeService: intakeService,
		PayoutService: payoutService,
		Settler:       payoutService,
	}
}
