// Package batch renders many independent (record, variant) jobs in parallel.
package batch

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-charsheet/pkg/assemble"
	"github.com/goliatone/go-charsheet/pkg/schema"
)

// Renderer is the part of *assemble.Assembler the runner needs.
type Renderer interface {
	RenderInput(ctx context.Context, in schema.Input, variant string) (assemble.Document, error)
}

// Job pairs an input document with the variant to render it as.
type Job struct {
	Input   schema.Input
	Variant string
}

// Result is the outcome of one job. Err is set when the job failed; the
// Document then carries whatever state the render reached.
type Result struct {
	Job      Job
	Document assemble.Document
	Err      error
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the number of concurrent renders. Values below one fall
// back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner fans jobs out over a bounded worker pool.
type Runner struct {
	renderer Renderer
	workers  int
	logger   *zap.Logger
}

// New constructs a Runner around renderer.
func New(renderer Renderer, options ...Option) *Runner {
	r := &Runner{renderer: renderer, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.workers < 1 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// Jobs returns one job per input and variant, inputs first.
func Jobs(inputs []schema.Input, variants ...string) []Job {
	jobs := make([]Job, 0, len(inputs)*len(variants))
	for _, in := range inputs {
		for _, variant := range variants {
			jobs = append(jobs, Job{Input: in, Variant: variant})
		}
	}
	return jobs
}

// Run renders every job and returns the results in job order. A failing job
// never stops the others; cancelling ctx makes the remaining jobs fail with
// the context error.
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = r.run(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Runner) run(ctx context.Context, job Job) Result {
	result := Result{Job: job}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	result.Document, result.Err = r.renderer.RenderInput(ctx, job.Input, job.Variant)
	if result.Err != nil {
		r.logger.Debug("batch job failed",
			zap.String("input", job.Input.Location()),
			zap.String("variant", job.Variant),
			zap.Error(result.Err),
		)
		return result
	}
	r.logger.Debug("batch job rendered",
		zap.String("input", job.Input.Location()),
		zap.String("variant", job.Variant),
		zap.Int("pages", result.Document.Pages),
	)
	return result
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, result := range results {
		if result.Err != nil {
			out = append(out, result)
		}
	}
	return out
}
