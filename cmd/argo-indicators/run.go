package main

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-indicators/internal/cache"
	"github.com/rxtech-lab/argo-indicators/internal/calculator"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/runner"
	"github.com/rxtech-lab/argo-indicators/internal/writer"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run every job of a batch config and export the results to parquet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to the YAML config", Required: true},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Do not show a progress bar"},
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	ds, err := datasource.NewDataSource(":memory:", log)
	if err != nil {
		return err
	}
	defer ds.Close()

	m := metrics.NewMetrics()
	calc := calculator.NewCalculator(log,
		calculator.WithCache(cache.NewResultCache(cfg.CacheSettings())),
		calculator.WithMetrics(m),
	)
	w := writer.NewDuckDBWriter(cfg.OutputPath, log)
	r := runner.NewRunner(ds, w, calc, log, runner.WithMetrics(m))

	var callbacks runner.LifecycleCallbacks
	if !cmd.Bool("quiet") {
		callbacks = progressCallbacks()
	}

	summary, err := r.Run(ctx, cfg, callbacks)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "run %s: %d completed, %d skipped, results written to %s\n",
		summary.RunID, summary.Completed, summary.Skipped, summary.OutputPath)

	return err
}

// progressCallbacks renders one progress bar step per finished job.
func progressCallbacks() runner.LifecycleCallbacks {
	var bar *progressbar.ProgressBar

	onRunStart := runner.OnRunStartCallback(func(runID string, totalJobs int) error {
		bar = progressbar.NewOptions(totalJobs,
			progressbar.OptionSetDescription("Calculating indicators"),
			progressbar.OptionShowCount(),
		)

		return nil
	})

	onJobStart := runner.OnJobStartCallback(func(jobIndex int, job config.Job, totalCandles int) error {
		bar.Describe(fmt.Sprintf("%s (%s over %d candles)", job.Name, job.Indicator, totalCandles))

		return nil
	})

	onJobEnd := runner.OnJobEndCallback(func(jobIndex int, job config.Job, status runner.JobStatus, err error) {
		_ = bar.Add(1)
	})

	onRunEnd := runner.OnRunEndCallback(func(runID string, summary runner.Summary, err error) {
		if bar != nil {
			_ = bar.Finish()
		}
	})

	return runner.LifecycleCallbacks{
		OnRunStart: &onRunStart,
		OnJobStart: &onJobStart,
		OnJobEnd:   &onJobEnd,
		OnRunEnd:   &onRunEnd,
	}
}
