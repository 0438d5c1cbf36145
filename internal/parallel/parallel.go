package parallel

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of a parallel task.
type Result struct {
	Name    string
	OK      bool
	Err     error
	Output  string
	Elapsed time.Duration
}

// Task is a named probe run in parallel.
type Task struct {
	Name string
	Fn   func(ctx context.Context) (string, error)
}

// Run executes tasks in parallel with the given concurrency limit.
// Results come back in the order tasks were submitted.
func Run(ctx context.Context, tasks []Task, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = 4
	}

	results := make([]Result, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, task := range tasks {
		g.Go(func() error {
			start := time.Now()
			output, err := task.Fn(gctx)
			results[i] = Result{
				Name:    task.Name,
				OK:      err == nil,
				Err:     err,
				Output:  output,
				Elapsed: time.Since(start),
			}
			return nil // collect failures instead of cancelling siblings
		})
	}

	_ = g.Wait()
	return results
}

// Failed returns the results that did not succeed.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}
