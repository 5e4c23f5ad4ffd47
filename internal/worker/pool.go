package worker

import (
	"context"
	"sync"
)

// Task is one unit of enrichment work: it receives the pool context and
// returns an opaque result the caller collects.
type Task func(ctx context.Context) Result

// Result is what a task reports back
type Result interface {
	GetError() error
}

// Pool runs tasks across a fixed set of workers. Used for the optional
// vision enrichment pass, where each task is one page-image narration call;
// the deterministic pipeline itself stays single-threaded.
type Pool struct {
	workers   int
	tasks     chan Task
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given worker count
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	poolCtx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, workers*2),
		results: make(chan Result, workers*2),
		ctx:     poolCtx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			result := task(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a task; it is dropped if the pool is shutting down
func (p *Pool) Submit(task Task) {
	select {
	case <-p.ctx.Done():
	case p.tasks <- task:
	}
}

// Wait closes intake, waits for the workers, and returns every result
func (p *Pool) Wait() []Result {
	close(p.tasks)
	go func() {
		p.wg.Wait()
		p.closeOnce.Do(func() { close(p.results) })
	}()

	var results []Result
	for r := range p.results {
		results = append(results, r)
	}
	return results
}

// Shutdown cancels in-flight tasks and releases the workers
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeOnce.Do(func() { close(p.results) })
}
