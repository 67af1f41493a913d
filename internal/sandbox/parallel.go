package sandbox

import (
	"context"
	"runtime"
	"sync"
)

// BatchJob builds one independent session to run. Build is called on the
// worker goroutine; nothing is shared between jobs. Run, when set, replaces
// the plain Session.Run so a job can drive its session through a scenario
// player or any other frame loop.
type BatchJob struct {
	Name  string
	Build func() (*Session, RunConfig, error)
	Run   func(ctx context.Context, sess *Session, rc RunConfig) error
}

// BatchResult collects the outcome of one job.
type BatchResult struct {
	Name    string
	Metrics map[string]float64
	Frames  int
	Err     error
}

// Batch runs independent sessions concurrently, at most workers at a time.
// Each session stays single-owner; only the result slots are shared, and
// each goroutine writes its own index.
type Batch struct {
	workers int
}

func NewBatch(workers int) *Batch {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Batch{workers: workers}
}

func (b *Batch) Run(ctx context.Context, jobs []BatchJob) []BatchResult {
	results := make([]BatchResult, len(jobs))
	sem := make(chan struct{}, b.workers)

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			job := jobs[idx]
			results[idx].Name = job.Name

			sess, rc, err := job.Build()
			if err != nil {
				results[idx].Err = err
				return
			}
			run := job.Run
			if run == nil {
				run = func(ctx context.Context, sess *Session, rc RunConfig) error {
					return sess.Run(ctx, rc)
				}
			}
			if err := run(ctx, sess, rc); err != nil {
				results[idx].Err = err
				return
			}

			results[idx].Metrics = sess.MetricValues()
			results[idx].Frames = sess.FrameCount()
		}(i)
	}
	wg.Wait()

	return results
}
