package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/cache"
	"github.com/GlebRadaev/payoutengine/internal/config"
	"github.com/GlebRadaev/payoutengine/internal/handlers"
	"github.com/GlebRadaev/payoutengine/internal/pg"
	"github.com/GlebRadaev/payoutengine/internal/repo"
	"github.com/GlebRadaev/payoutengine/internal/service"
	"github.com/GlebRadaev/payoutengine/internal/settlement"
	"github.com/GlebRadaev/payoutengine/pkg/auth"
	"github.com/GlebRadaev/payoutengine/pkg/events"
	"github.com/GlebRadaev/payoutengine/pkg/logger"
	"github.com/GlebRadaev/payoutengine/pkg/transfer"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg       *config.Config
	api       *handlers.Handlers
	srv       *service.Services
	repo      *repo.Repositories
	scheduler *settlement.Scheduler

	closers []io.Closer
	errCh   chan error
	wg      sync.WaitGroup
	ready   bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	if err := a.open(ctx, cfg); err != nil {
		return err
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	if err = a.startScheduler(ctx); err != nil {
		return fmt.Errorf("can't start settlement scheduler: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// Open connects to the database and wires the services without starting
// the HTTP server or the scheduler. Used by the operator CLI.
func Open(ctx context.Context, cfg *config.Config) (*Application, error) {
	a := New()
	if err := a.open(ctx, cfg); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *Application) Services() *service.Services {
	return a.srv
}

func (a *Application) Scheduler() *settlement.Scheduler {
	return a.scheduler
}

func (a *Application) Close() error {
	return a.close()
}

func (a *Application) open(ctx context.Context, cfg *config.Config) error {
	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.closers = append(a.closers, closerFunc(func() error { pool.Close(); return nil }))
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}

	a.cfg = cfg
	return a.build(ctx, pool)
}

// build wires repositories, optional infrastructure and services on top of pool.
func (a *Application) build(ctx context.Context, pool *pgxpool.Pool) error {
	cfg := a.cfg
	a.repo = repo.New(pg.New(pool), pg.NewTXManager(pool))

	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("can't connect to redis: %w", err)
		}
		a.closers = append(a.closers, client)
		a.repo.PolicyRepo = cache.NewPolicyCache(client, a.repo.PolicyRepo, cfg.PolicyCacheTTL)
		zap.L().Info("policy cache enabled", zap.Duration("ttl", cfg.PolicyCacheTTL))
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.PayoutEventsTopic)
		if err != nil {
			return fmt.Errorf("can't create event publisher: %w", err)
		}
		publisher = kafkaPublisher
		zap.L().Info("payout events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.PayoutEventsTopic))
	}
	a.closers = append(a.closers, publisher)

	provider := transfer.NewStripeProvider(transfer.Config{
		SecretKey:         cfg.StripeSecretKey,
		URL:               cfg.StripeAPIURL,
		Timeout:           cfg.TransferTimeout,
		RatePerSecond:     cfg.TransferRateLimit,
		MaxNetworkRetries: 2,
	})

	a.srv = service.New(cfg, a.repo, publisher, provider)
	a.api = handlers.New(a.srv, auth.NewJWTService(cfg.JWTSecret))
	a.scheduler = settlement.NewScheduler(a.srv.Settler, cfg.SettleSchedule, cfg.SettleWorkers)
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

// startScheduler runs the settlement sweeps until ctx is done. Wait does not
// release resources before the last sweep has drained.
func (a *Application) startScheduler(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.scheduler.Wait()
	}()
	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	if err := a.close(); err != nil {
		zap.L().Error("failed to release resources", zap.Error(err))
		if appErr == nil {
			appErr = err
		}
	}
	return appErr
}

// close releases resources in reverse order of acquisition.
func (a *Application) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
