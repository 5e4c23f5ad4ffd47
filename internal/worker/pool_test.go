package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type taskResult struct {
	err error
}

func (r taskResult) GetError() error { return r.err }

func TestPool_RunsEveryTask(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	var executed int32
	for i := 0; i < 10; i++ {
		pool.Submit(func(ctx context.Context) Result {
			atomic.AddInt32(&executed, 1)
			return taskResult{}
		})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Errorf("expected 10 results, got %d", len(results))
	}
	if n := atomic.LoadInt32(&executed); n != 10 {
		t.Errorf("expected 10 executions, got %d", n)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	pool.Submit(func(ctx context.Context) Result {
		return taskResult{err: errors.New("narration failed")}
	})
	pool.Submit(func(ctx context.Context) Result {
		return taskResult{}
	})

	var failed int
	for _, r := range pool.Wait() {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed result, got %d", failed)
	}
}

func TestPool_DefaultsToOneWorker(t *testing.T) {
	pool := NewPool(context.Background(), 0)
	if pool.workers != 1 {
		t.Errorf("workers = %d, want 1", pool.workers)
	}
}

func TestPool_ShutdownCancelsTasks(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(func(ctx context.Context) Result {
		close(started)
		select {
		case <-ctx.Done():
			return taskResult{err: ctx.Err()}
		case <-time.After(5 * time.Second):
			return taskResult{}
		}
	})

	<-started
	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after cancel")
	}
}

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow() {
		t.Error("first request should be allowed")
	}
	if l.Allow() {
		t.Error("second immediate request should be throttled")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow() // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("Wait should fail when the context expires first")
	}
}

func TestLimiter_Defaults(t *testing.T) {
	l := NewLimiter(0, 0)
	if !l.Allow() {
		t.Error("defaulted limiter should allow an initial request")
	}
}
