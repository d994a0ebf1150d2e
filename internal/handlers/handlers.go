package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/payoutengine/docs"
	payouthandlers "github.com/GlebRadaev/payoutengine/internal/handlers/payouts"
	webhookhandlers "github.com/GlebRadaev/payoutengine/internal/handlers/webhooks"
	"github.com/GlebRadaev/payoutengine/internal/service"
	"github.com/GlebRadaev/payoutengine/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type WebhookHandler interface {
	OrderCreated(w http.ResponseWriter, r *http.Request)
}

type PayoutHandler interface {
	GetPromoterPayouts(w http.ResponseWriter, r *http.Request)
	GetPayout(w http.ResponseWriter, r *http.Request)
	Settle(w http.ResponseWriter, r *http.Request)
	Retry(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	WebhookHandler WebhookHandler
	PayoutHandler  PayoutHandler
	jwtService     auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		WebhookHandler: webhookhandlers.New(s.IntakeService),
		PayoutHandler:  payouthandlers.New(s.PayoutService),
		jwtService:     jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/webhooks/orders", h.WebhookHandler.OrderCreated)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.jwtService))
			r.Route("/payouts", func(r chi.Router) {
				r.Get("/promoters/{promoterID}", h.PayoutHandler.GetPromoterPayouts)
				r.Post("/promoters/{promoterID}/settle", h.PayoutHandler.Settle)
				r.Get("/{payoutID}", h.PayoutHandler.GetPayout)
				r.Post("/{payoutID}/retry", h.PayoutHandler.Retry)
			})
		})
	})

	return r
}
