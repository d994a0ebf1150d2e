// Package transfer moves settled commission to a promoter's connected
// Stripe account.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v82"
	stripetransfer "github.com/stripe/stripe-go/v82/transfer"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Request struct {
	DestinationID  string
	AmountCents    int64
	Currency       string
	IdempotencyKey string
	Metadata       map[string]string
}

// Error is returned for every failed transfer. Code carries the provider's
// error code when there is one.
type Error struct {
	Code    string
	Timeout bool
	Err     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("transfer failed (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("transfer failed: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Config struct {
	SecretKey         string
	URL               string
	Timeout           time.Duration
	RatePerSecond     float64
	MaxNetworkRetries int64
}

type StripeProvider struct {
	client  *stripetransfer.Client
	limiter *rate.Limiter
}

func NewStripeProvider(cfg Config) *StripeProvider {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries),
		LeveledLogger:     zap.S(),
	}
	if cfg.URL != "" {
		backendCfg.URL = stripe.String(cfg.URL)
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &StripeProvider{
		client: &stripetransfer.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Transfer creates a Stripe transfer and returns its id. Requests with the
// same idempotency key are answered with the original transfer.
func (p *StripeProvider) Transfer(ctx context.Context, req Request) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", &Error{Timeout: isTimeout(ctx, err), Err: err}
	}

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(req.Currency),
		Destination: stripe.String(req.DestinationID),
		Metadata:    req.Metadata,
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.IdempotencyKey)

	tr, err := p.client.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return "", &Error{Code: string(stripeErr.Code), Err: err}
		}
		return "", &Error{Timeout: isTimeout(ctx, err), Err: err}
	}
	return tr.ID, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
