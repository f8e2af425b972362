// Package runner executes batch configs: for every job it reads candles,
// calculates the indicator and hands the result to a writer.
package runner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-indicators/internal/calculator"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/writer"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// Lifecycle callback types for run phases
// All callbacks with error return can abort execution if they return an error

// OnRunStartCallback is called once before the first job.
type OnRunStartCallback func(runID string, totalJobs int) error

// OnRunEndCallback is called when the run completes (always called via defer).
type OnRunEndCallback func(runID string, summary Summary, err error)

// OnJobStartCallback is called after a job's candles were read.
type OnJobStartCallback func(jobIndex int, job config.Job, totalCandles int) error

// OnJobEndCallback is called when a job finished, was skipped or failed.
type OnJobEndCallback func(jobIndex int, job config.Job, status JobStatus, err error)

// LifecycleCallbacks holds all lifecycle callback functions for the runner.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart *OnRunStartCallback
	OnRunEnd   *OnRunEndCallback
	OnJobStart *OnJobStartCallback
	OnJobEnd   *OnJobEndCallback
}

type JobStatus string

const (
	JobStatusCompleted JobStatus = "completed"
	JobStatusSkipped   JobStatus = "skipped"
	JobStatusFailed    JobStatus = "failed"
)

// Summary describes a finished run.
type Summary struct {
	RunID      string
	OutputPath string
	Completed  int
	Skipped    int
}

type Runner struct {
	dataSource datasource.DataSource
	writer     writer.ResultWriter
	calculator *calculator.Calculator
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

type Option func(*Runner)

// WithMetrics records job outcomes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

func NewRunner(ds datasource.DataSource, w writer.ResultWriter, calc *calculator.Calculator, log *logger.Logger, opts ...Option) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}

	r := &Runner{
		dataSource: ds,
		writer:     w,
		calculator: calc,
		logger:     log,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes every job of cfg in order. A job whose series is too short
// for its indicator is skipped; any other failure aborts the run. The context
// is checked between jobs.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, callbacks LifecycleCallbacks) (summary Summary, err error) {
	summary.RunID = uuid.New().String()

	defer func() {
		if callbacks.OnRunEnd != nil {
			(*callbacks.OnRunEnd)(summary.RunID, summary, err)
		}
	}()

	if err := r.dataSource.Initialize(cfg.DataPath); err != nil {
		return summary, fmt.Errorf("failed to initialize data source: %w", err)
	}

	if err := r.writer.Initialize(); err != nil {
		return summary, fmt.Errorf("failed to initialize result writer: %w", err)
	}
	defer r.writer.Close()

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(summary.RunID, len(cfg.Jobs)); err != nil {
			return summary, err
		}
	}

	r.logger.Info("Starting indicator run",
		zap.String("run_id", summary.RunID),
		zap.String("data", cfg.DataPath),
		zap.Int("jobs", len(cfg.Jobs)),
	)

	for i, job := range cfg.Jobs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		status, err := r.runJob(summary.RunID, i, job, callbacks)

		if callbacks.OnJobEnd != nil {
			(*callbacks.OnJobEnd)(i, job, status, err)
		}

		r.metrics.ObserveJob(string(status))

		switch status {
		case JobStatusCompleted:
			summary.Completed++
		case JobStatusSkipped:
			summary.Skipped++

			r.logger.Warn("Skipping job",
				zap.String("job", job.Name),
				zap.String("symbol", job.Symbol),
				zap.Error(err),
			)
		case JobStatusFailed:
			return summary, fmt.Errorf("job %q: %w", job.Name, err)
		}
	}

	outputPath, err := r.writer.Finalize()
	if err != nil {
		return summary, err
	}

	summary.OutputPath = outputPath

	r.logger.Info("Indicator run finished",
		zap.String("run_id", summary.RunID),
		zap.Int("completed", summary.Completed),
		zap.Int("skipped", summary.Skipped),
		zap.String("output", outputPath),
	)

	return summary, nil
}

func (r *Runner) runJob(runID string, index int, job config.Job, callbacks LifecycleCallbacks) (JobStatus, error) {
	candles, err := r.dataSource.ReadSeries(job.Symbol, job.StartTime, job.EndTime)
	if err != nil {
		return JobStatusFailed, err
	}

	if callbacks.OnJobStart != nil {
		if err := (*callbacks.OnJobStart)(index, job, len(candles)); err != nil {
			return JobStatusFailed, err
		}
	}

	params := job.ResolvedParams()

	required := max(types.RequiredLength(job.Indicator, params), 1)
	if len(candles) < required {
		return JobStatusSkipped, errors.NewInsufficientDataErrorf(required, len(candles), job.Symbol,
			"%s needs %d candles of %s, got %d", job.Indicator, required, job.Symbol, len(candles))
	}

	result, err := r.calculator.CalculateMarketData(job.Indicator, candles, params)
	if err != nil {
		return JobStatusFailed, err
	}

	if err := r.writer.Write(runID, job.Name, candles, result); err != nil {
		return JobStatusFailed, err
	}

	r.logger.Debug("Job completed",
		zap.String("job", job.Name),
		zap.String("indicator", string(job.Indicator)),
		zap.Int("candles", len(candles)),
	)

	return JobStatusCompleted, nil
}
