// Package tasks runs queued background jobs from the store with a
// fixed pool of workers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/store"
)

// Handler executes one job. The progress callback stores advisory
// counters; returning an error fails the job with the error text as
// its message.
type Handler func(ctx context.Context, job *models.Job, progress func(current, total int)) (result string, err error)

// Dispatcher polls the job queue and fans claimed jobs out to
// workers. Each worker claims its own next job, so a slow job never
// blocks the rest of the pool.
type Dispatcher struct {
	Store        *store.Store
	NumWorkers   int
	PollInterval time.Duration

	handlers map[string]Handler
}

// NewDispatcher returns a dispatcher over the given store. A worker
// count of zero or less selects the CPU count; a zero poll interval
// defaults to two seconds.
func NewDispatcher(s *store.Store, numWorkers int, pollInterval time.Duration) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Dispatcher{
		Store:        s,
		NumWorkers:   numWorkers,
		PollInterval: pollInterval,
		handlers:     make(map[string]Handler),
	}
}

// Register binds a handler to a job name. Registering a name twice
// replaces the earlier handler.
func (d *Dispatcher) Register(name string, h Handler) {
	d.handlers[name] = h
}

// Run blocks until ctx is done, working the queue the whole time.
// In-flight jobs finish (or fail on their own terms) before Run
// returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	log.Printf("dispatcher starting with %d workers, polling every %s", d.NumWorkers, d.PollInterval)

	var wg sync.WaitGroup
	for i := 0; i < d.NumWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			d.worker(ctx, id)
		}(i)
	}
	wg.Wait()

	log.Printf("dispatcher stopped")
	return ctx.Err()
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	for {
		job, err := d.Store.ClaimJob()
		if err != nil {
			if !errors.Is(err, store.ErrNoQueuedJobs) {
				log.Printf("worker %d: claim failed: %v", id, err)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(d.PollInterval):
			}
			continue
		}

		d.runJob(ctx, job)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (d *Dispatcher) runJob(ctx context.Context, job *models.Job) {
	handler, ok := d.handlers[job.Name]
	if !ok {
		log.Printf("job %s: no handler for %q", job.ID, job.Name)
		if err := d.Store.FailJob(job.ID, fmt.Sprintf("no handler registered for %q", job.Name)); err != nil {
			log.Printf("job %s: failed to record missing handler: %v", job.ID, err)
		}
		return
	}

	log.Printf("job %s (%s) started", job.ID, job.Name)
	progress := func(current, total int) {
		if err := d.Store.UpdateJobProgress(job.ID, current, total); err != nil {
			log.Printf("job %s: progress update failed: %v", job.ID, err)
		}
	}

	result, err := handler(ctx, job, progress)
	if err != nil {
		log.Printf("job %s (%s) failed: %v", job.ID, job.Name, err)
		if ferr := d.Store.FailJob(job.ID, err.Error()); ferr != nil {
			log.Printf("job %s: failed to record failure: %v", job.ID, ferr)
		}
		return
	}

	if err := d.Store.CompleteJob(job.ID, result); err != nil {
		log.Printf("job %s: failed to record completion: %v", job.ID, err)
		return
	}
	log.Printf("job %s (%s) finished", job.ID, job.Name)
}
