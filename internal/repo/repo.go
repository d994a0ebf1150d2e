package repo

import (
	"github.com/GlebRadaev/payoutengine/internal/pg"
	payoutrepo "github.com/GlebRadaev/payoutengine/internal/repo/payout-repo"
	policyrepo "github.com/GlebRadaev/payoutengine/internal/repo/policy-repo"
	promoterrepo "github.com/GlebRadaev/payoutengine/internal/repo/promoter-repo"
	"github.com/GlebRadaev/payoutengine/internal/service/attributionservice"
	"github.com/GlebRadaev/payoutengine/internal/service/ledgerservice"
	"github.com/GlebRadaev/payoutengine/internal/service/payoutservice"
	"github.com/GlebRadaev/payoutengine/internal/service/policyservice"
)

type PromoterRepo interface {
	attributionservice.Repo
	payoutservice.PromoterRepo
}

type Repositories struct {
	PayoutRepo   ledgerservice.Repo
	PromoterRepo PromoterRepo
	PolicyRepo   policyservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	payoutRepo := payoutrepo.New(conn, txManager)
	promoterRepo := promoterrepo.New(conn)
	policyRepo := policyrepo.New(conn)

	return &Repositories{
		PayoutRepo:   payoutRepo,
		PromoterRepo: promoterRepo,
		PolicyRepo:   policyRepo,
	}
}
