package enrichment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestTryDispatch_RejectsWhenQueueFull(t *testing.T) {
	// No workers started: the queue fills up and stays full
	pool := NewPool(1, 2, zap.NewNop())

	if !pool.TryDispatch(uuid.New()) {
		t.Fatal("first dispatch should be accepted")
	}
	if !pool.TryDispatch(uuid.New()) {
		t.Fatal("second dispatch should be accepted")
	}
	if pool.TryDispatch(uuid.New()) {
		t.Error("dispatch into a full queue must be rejected, not block")
	}
}

func TestPool_WorkersDrainQueue(t *testing.T) {
	pool := NewPool(2, 10, zap.NewNop())

	handled := make(chan uuid.UUID, 10)
	pool.Start(func(ctx context.Context, id uuid.UUID) {
		handled <- id
	})

	dispatched := make(map[uuid.UUID]bool)
	for i := 0; i < 5; i++ {
		id := uuid.New()
		dispatched[id] = true
		if !pool.TryDispatch(id) {
			t.Fatalf("dispatch %d rejected unexpectedly", i)
		}
	}

	for i := 0; i < 5; i++ {
		select {
		case id := <-handled:
			if !dispatched[id] {
				t.Errorf("handled unknown id %s", id)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for task %d", i)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pool.Shutdown(ctx)
}

func TestShutdown_WaitsForInFlightTasks(t *testing.T) {
	pool := NewPool(1, 1, zap.NewNop())

	done := make(chan struct{})
	pool.Start(func(ctx context.Context, id uuid.UUID) {
		time.Sleep(50 * time.Millisecond)
		close(done)
	})

	if !pool.TryDispatch(uuid.New()) {
		t.Fatal("dispatch rejected unexpectedly")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pool.Shutdown(ctx)

	select {
	case <-done:
	default:
		t.Error("shutdown returned before the in-flight task completed")
	}
}
