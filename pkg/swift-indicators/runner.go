package swiftindicators

import (
	"context"
	"fmt"
	"sync"

	"github.com/rxtech-lab/argo-indicators/internal/cache"
	"github.com/rxtech-lab/argo-indicators/internal/calculator"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/runner"
	"github.com/rxtech-lab/argo-indicators/internal/writer"
)

// BatchRunnerHelper receives progress updates from BatchRunner.
type BatchRunnerHelper interface {
	OnJobProgress(current, total float64, message string)
}

type BatchRunner struct {
	helper BatchRunnerHelper

	// Cancellation support
	mu         sync.Mutex
	cancelFunc context.CancelFunc
}

func NewBatchRunner(helper BatchRunnerHelper) *BatchRunner {
	return &BatchRunner{
		helper: helper,
	}
}

// Run executes the batch config at configPath and returns the parquet output
// path. This method is blocking and can be cancelled by calling Cancel() from
// another goroutine; cancellation takes effect between jobs.
func (b *BatchRunner) Run(configPath string) (string, error) {
	ctx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	b.cancelFunc = cancel
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.cancelFunc = nil
		b.mu.Unlock()
		cancel()
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}

	log := logger.NewNopLogger()

	ds, err := datasource.NewDataSource(":memory:", log)
	if err != nil {
		return "", err
	}
	defer ds.Close()

	calc := calculator.NewCalculator(log, calculator.WithCache(cache.NewResultCache(cfg.CacheSettings())))
	r := runner.NewRunner(ds, writer.NewDuckDBWriter(cfg.OutputPath, log), calc, log)

	summary, err := r.Run(ctx, cfg, b.callbacks())
	if err != nil {
		return "", err
	}

	return summary.OutputPath, nil
}

// Cancel stops a running batch. It is a no-op when nothing is running.
func (b *BatchRunner) Cancel() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancelFunc == nil {
		return false
	}

	b.cancelFunc()

	return true
}

func (b *BatchRunner) callbacks() runner.LifecycleCallbacks {
	if b.helper == nil {
		return runner.LifecycleCallbacks{}
	}

	var total int

	onRunStart := runner.OnRunStartCallback(func(runID string, totalJobs int) error {
		total = totalJobs

		return nil
	})

	onJobEnd := runner.OnJobEndCallback(func(jobIndex int, job config.Job, status runner.JobStatus, err error) {
		b.helper.OnJobProgress(float64(jobIndex+1), float64(total), fmt.Sprintf("%s %s", job.Name, status))
	})

	return runner.LifecycleCallbacks{
		OnRunStart: &onRunStart,
		OnJobEnd:   &onJobEnd,
	}
}
