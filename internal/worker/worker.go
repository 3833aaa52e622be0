// Package worker runs batch jobs on a bounded pool of goroutines. Per-image
// processing stays single-threaded and isolated; the pool only adds
// image-level parallelism. Results are funneled through a single collector
// callback so downstream consumers (progress bar, ledger writes) never need
// their own locking.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/types"
)

// Pool processes jobs with a fixed number of workers.
type Pool struct {
	Workers int
}

// New returns a pool with at least one worker.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{Workers: workers}
}

// Run feeds every job through fn and invokes onResult sequentially, in
// completion order, from a single goroutine. A failing job does not stop the
// batch; context cancellation does, between jobs. Run returns once every
// queued job has been reported or the context is done.
func (p *Pool) Run(ctx context.Context, jobs []types.Job, fn func(types.Job) error, onResult func(types.Result)) error {
	taskChan := make(chan types.Job, p.Workers)
	resultsChan := make(chan types.Result, p.Workers*2)

	var wg sync.WaitGroup
	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range taskChan {
				start := time.Now()
				err := fn(job)
				select {
				case resultsChan <- types.Result{Job: job, Err: err, Duration: time.Since(start)}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(taskChan)
		for _, job := range jobs {
			select {
			case taskChan <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-resultsChan:
			if !ok {
				return nil
			}
			if onResult != nil {
				onResult(res)
			}
		}
	}
}
