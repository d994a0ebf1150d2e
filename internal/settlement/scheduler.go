package settlement

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

type Settler interface {
	RecoverStale(ctx context.Context) (int, error)
	DuePromoters(ctx context.Context) ([]string, error)
	EvaluateAndSettle(ctx context.Context, promoterID string) (*domain.SettlementResult, error)
}

type SweepSummary struct {
	Recovered int `json:"recovered"`
	Promoters int `json:"promoters"`
	Settled   int `json:"settled"`
	Failed    int `json:"failed"`
}

// Scheduler periodically settles every promoter with PENDING records.
type Scheduler struct {
	settler    Settler
	schedule   string
	workerPool WorkerPoolI
	cron       *cron.Cron
	inflight   sync.Map
	started    atomic.Bool
	stopped    chan struct{}
}

func NewScheduler(settler Settler, schedule string, workers int) *Scheduler {
	logger := cronLogger{zap.S()}
	return &Scheduler{
		settler:    settler,
		schedule:   schedule,
		workerPool: NewWorkerPool(workers),
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		stopped: make(chan struct{}),
	}
}

// Start registers the sweep and returns. The scheduler stops when ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("invalid settle schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.started.Store(true)
	zap.L().Info("Settlement scheduler started", zap.String("schedule", s.schedule))

	go func() {
		defer close(s.stopped)
		<-ctx.Done()
		// a running sweep waits for its settlements, so Done fires after they are written
		<-s.cron.Stop().Done()
		s.workerPool.Close()
		zap.L().Info("Settlement scheduler stopped")
	}()
	return nil
}

// Wait blocks until a started scheduler has stopped and its last sweep has
// finished. It returns at once if Start never succeeded.
func (s *Scheduler) Wait() {
	if !s.started.Load() {
		return
	}
	<-s.stopped
}

// Sweep recovers stale PROCESSING records, then settles due promoters on
// the worker pool and waits for them. A promoter already being settled is
// skipped.
func (s *Scheduler) Sweep(ctx context.Context) SweepSummary {
	var summary SweepSummary

	recovered, err := s.settler.RecoverStale(ctx)
	if err != nil {
		zap.L().Error("Failed to recover stale payouts", zap.Error(err))
	}
	summary.Recovered = recovered

	promoters, err := s.settler.DuePromoters(ctx)
	if err != nil {
		zap.L().Error("Failed to fetch promoters with pending payouts", zap.Error(err))
		return summary
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
		g  errgroup.Group
	)
	for _, promoterID := range promoters {
		promoterID := promoterID

		if _, loaded := s.inflight.LoadOrStore(promoterID, struct{}{}); loaded {
			continue
		}

		wg.Add(1)
		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer wg.Done()
				defer s.inflight.Delete(promoterID)

				result, err := s.settler.EvaluateAndSettle(ctx, promoterID)
				if err != nil {
					return fmt.Errorf("settle promoter %s: %w", promoterID, err)
				}
				mu.Lock()
				summary.Promoters++
				summary.Settled += len(result.Settled)
				summary.Failed += len(result.Failed)
				mu.Unlock()
				return nil
			})
			if err != nil {
				wg.Done()
				s.inflight.Delete(promoterID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error scheduling settlements", zap.Error(err))
	}
	wg.Wait()

	zap.L().Info("Settlement sweep finished",
		zap.Int("recovered", summary.Recovered),
		zap.Int("promoters", summary.Promoters),
		zap.Int("settled", summary.Settled),
		zap.Int("failed", summary.Failed))
	return summary
}

func (s *Scheduler) Close() {
	s.workerPool.Close()
}

type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
