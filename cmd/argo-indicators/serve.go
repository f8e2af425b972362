package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/api"
	"github.com/rxtech-lab/argo-indicators/internal/cache"
	"github.com/rxtech-lab/argo-indicators/internal/calculator"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the indicator HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address", Value: ":8080", Sources: cli.EnvVars("ARGO_INDICATORS_ADDR")},
			&cli.DurationFlag{Name: "cache-ttl", Usage: "How long a cached result stays valid", Value: cache.DefaultTTL},
			&cli.IntFlag{Name: "cache-size", Usage: "Maximum number of cached results", Value: cache.DefaultMaxEntries},
		},
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	m := metrics.NewMetrics()
	calc := calculator.NewCalculator(log,
		calculator.WithCache(cache.NewResultCache(cmd.Duration("cache-ttl"), int(cmd.Int("cache-size")))),
		calculator.WithMetrics(m),
	)
	server := api.NewServer(calc, m, log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(cmd.String("addr")); err != nil {
		return err
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Stop(shutdownCtx)
}
