package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/provider"
	"github.com/b2b-bazaar/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleOrderTimeoutCancelRejectsBrokenPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	err := consumer.handleOrderTimeoutCancel(context.Background(), asynq.NewTask(queue.TaskOrderTimeoutCancel, []byte("{broken")))
	if err == nil {
		t.Fatalf("expected unmarshal error")
	}
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("broken payload should skip retry, got %v", err)
	}
}

func TestHandleOrderTimeoutCancelSkipsWithoutOrder(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task, err := queue.NewOrderTimeoutCancelTask(queue.OrderTimeoutCancelPayload{})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderTimeoutCancel(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be ignored, got %v", err)
	}

	task, err = queue.NewOrderTimeoutCancelTask(queue.OrderTimeoutCancelPayload{OrderID: 5, OrderNumber: "ORD-2601-00005"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderTimeoutCancel(context.Background(), task); err != nil {
		t.Fatalf("missing order service should be ignored, got %v", err)
	}
}

type fakeSweeper struct {
	mu      sync.Mutex
	ttl     time.Duration
	calls   []time.Time
	limits  []int
	results int
	err     error
}

func (f *fakeSweeper) CancelExpiredPending(_ context.Context, before time.Time, limit int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, before)
	f.limits = append(f.limits, limit)
	return f.results, f.err
}

func (f *fakeSweeper) PendingTTL() time.Duration {
	return f.ttl
}

func TestSweepLoopUsesTTLAndBatch(t *testing.T) {
	fake := &fakeSweeper{ttl: 30 * time.Minute, results: 2}
	loop := newSweepLoop(fake, config.WorkerConfig{PendingSweepBatchSize: 25})
	if loop.interval != defaultSweepInterval {
		t.Fatalf("interval want default got %s", loop.interval)
	}

	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	if got := loop.runOnce(context.Background(), now); got != 2 {
		t.Fatalf("cancelled want 2 got %d", got)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected one sweep call, got %d", len(fake.calls))
	}
	if want := now.Add(-30 * time.Minute); !fake.calls[0].Equal(want) {
		t.Fatalf("cutoff want %s got %s", want, fake.calls[0])
	}
	if fake.limits[0] != 25 {
		t.Fatalf("limit want 25 got %d", fake.limits[0])
	}
}

func TestSweepLoopSwallowsErrors(t *testing.T) {
	fake := &fakeSweeper{ttl: time.Minute, err: errors.New("db down")}
	loop := newSweepLoop(fake, config.WorkerConfig{})
	if loop.batchSize != defaultSweepBatchSize {
		t.Fatalf("batch want default got %d", loop.batchSize)
	}
	if got := loop.runOnce(context.Background(), time.Now()); got != 0 {
		t.Fatalf("failed sweep should report 0, got %d", got)
	}
}

func TestSweeperServiceStopsOnCancel(t *testing.T) {
	fake := &fakeSweeper{ttl: time.Minute}
	svc, err := NewSweeperService(fake, config.WorkerConfig{PendingSweepIntervalSeconds: 3600})
	if err != nil {
		t.Fatalf("new sweeper failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop after cancel")
	}

	if _, err := NewSweeperService(nil, config.WorkerConfig{}); err == nil {
		t.Fatalf("nil target should be rejected")
	}
}
