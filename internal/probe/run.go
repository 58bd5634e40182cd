package probe

import (
	"context"
	"sync"
	"time"

	"github.com/goodric/api-docs-tool/internal/endpoint"
	"github.com/goodric/api-docs-tool/internal/logger"
	"github.com/goodric/api-docs-tool/internal/ratelimit"
)

// RunnerConfig holds configuration for a probe run.
type RunnerConfig struct {
	// Workers bounds probe concurrency. The reference behavior is
	// strictly sequential; a small pool keeps one hung connection from
	// stalling the whole run.
	Workers int

	// Delay is the pacing interval between consecutive requests,
	// enforced globally across workers.
	Delay time.Duration
}

// DefaultRunnerConfig returns runner defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Workers: 5,
		Delay:   100 * time.Millisecond,
	}
}

// Runner drives the selected probes through a bounded worker pool and
// merges outcomes back into document order.
type Runner struct {
	executor *Executor
	pacer    *ratelimit.Pacer
	workers  int
	log      *logger.Logger
}

// NewRunner creates a probe runner.
func NewRunner(cfg RunnerConfig, executor *Executor, log *logger.Logger) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		executor: executor,
		pacer:    ratelimit.NewPacer(cfg.Delay),
		workers:  cfg.Workers,
		log:      log.WithComponent("runner"),
	}
}

// Run probes every endpoint in plan.ToProbe and returns the full
// aggregated sequence in original document order, each endpoint
// carrying exactly one outcome. On cancellation the partial results are
// discarded and ctx.Err() is returned: a misleadingly incomplete report
// is worse than none.
func (r *Runner) Run(ctx context.Context, plan Plan, total int) ([]endpoint.Probed, error) {
	outcomes := make([]endpoint.Outcome, len(plan.ToProbe))

	if len(plan.ToProbe) > 0 {
		r.log.Infof("probing %d of %d endpoints (%d workers, %s delay)",
			len(plan.ToProbe), total, r.workers, r.pacer.Interval())

		jobs := make(chan int)
		var wg sync.WaitGroup

		workers := r.workers
		if workers > len(plan.ToProbe) {
			workers = len(plan.ToProbe)
		}

		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					if err := r.pacer.Wait(ctx); err != nil {
						return
					}
					outcomes[i] = r.executor.Probe(ctx, plan.ToProbe[i].Endpoint)
				}
			}()
		}

	dispatch:
		for i := range plan.ToProbe {
			select {
			case jobs <- i:
			case <-ctx.Done():
				break dispatch
			}
		}
		close(jobs)
		wg.Wait()

		if err := ctx.Err(); err != nil {
			r.log.Warn("probe run cancelled, discarding partial results")
			return nil, err
		}
	}

	return plan.Merge(total, outcomes), nil
}
