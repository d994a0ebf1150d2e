package settlement

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

type fakeSettler struct {
	mu         sync.Mutex
	promoters  []string
	failFor    string
	recovered  int
	recoverErr error
	settled    []string
	sweeps     atomic.Int32
	hold       time.Duration
	entered    atomic.Int32
	finished   atomic.Int32
}

func (f *fakeSettler) RecoverStale(context.Context) (int, error) {
	f.sweeps.Add(1)
	return f.recovered, f.recoverErr
}

func (f *fakeSettler) DuePromoters(context.Context) ([]string, error) {
	return f.promoters, nil
}

func (f *fakeSettler) EvaluateAndSettle(_ context.Context, promoterID string) (*domain.SettlementResult, error) {
	f.entered.Add(1)
	defer f.finished.Add(1)
	time.Sleep(f.hold)
	if promoterID == f.failFor {
		return nil, errors.New("db error")
	}
	f.mu.Lock()
	f.settled = append(f.settled, promoterID)
	f.mu.Unlock()
	return &domain.SettlementResult{Settled: []string{promoterID + "-p1"}, Failed: []string{promoterID + "-p2"}}, nil
}

func TestScheduler_Sweep(t *testing.T) {
	settler := &fakeSettler{promoters: []string{"promo-1", "promo-2", "promo-3"}, failFor: "promo-2", recovered: 1}
	scheduler := NewScheduler(settler, "@every 1m", 2)
	defer scheduler.Close()

	summary := scheduler.Sweep(context.Background())

	assert.Equal(t, SweepSummary{Recovered: 1, Promoters: 2, Settled: 2, Failed: 2}, summary)
	assert.ElementsMatch(t, []string{"promo-1", "promo-3"}, settler.settled)
}

func TestScheduler_SweepSkipsInflightPromoter(t *testing.T) {
	settler := &fakeSettler{promoters: []string{"promo-1", "promo-2"}}
	scheduler := NewScheduler(settler, "@every 1m", 2)
	defer scheduler.Close()

	scheduler.inflight.Store("promo-1", struct{}{})
	summary := scheduler.Sweep(context.Background())

	assert.Equal(t, 1, summary.Promoters)
	assert.Equal(t, []string{"promo-2"}, settler.settled)
}

func TestScheduler_RecoveryFailureDoesNotStopSweep(t *testing.T) {
	settler := &fakeSettler{promoters: []string{"promo-1"}, recoverErr: errors.New("db error")}
	scheduler := NewScheduler(settler, "@every 1m", 1)
	defer scheduler.Close()

	summary := scheduler.Sweep(context.Background())
	assert.Equal(t, 1, summary.Promoters)
}

func TestScheduler_Start(t *testing.T) {
	t.Run("Invalid schedule", func(t *testing.T) {
		scheduler := NewScheduler(&fakeSettler{}, "every minute", 1)
		defer scheduler.Close()
		assert.Error(t, scheduler.Start(context.Background()))
		scheduler.Wait()
	})

	t.Run("Runs sweeps until canceled", func(t *testing.T) {
		settler := &fakeSettler{}
		scheduler := NewScheduler(settler, "@every 1s", 1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		require.NoError(t, scheduler.Start(ctx))
		assert.Eventually(t, func() bool { return settler.sweeps.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
		cancel()
		scheduler.Wait()
	})

	t.Run("Wait drains the running sweep", func(t *testing.T) {
		settler := &fakeSettler{promoters: []string{"promo-1"}, hold: 300 * time.Millisecond}
		scheduler := NewScheduler(settler, "@every 1s", 1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		require.NoError(t, scheduler.Start(ctx))
		require.Eventually(t, func() bool { return settler.entered.Load() > 0 }, 3*time.Second, 10*time.Millisecond)

		cancel()
		scheduler.Wait()

		assert.Equal(t, settler.entered.Load(), settler.finished.Load())
		assert.Contains(t, settler.settled, "promo-1")
	})
}
