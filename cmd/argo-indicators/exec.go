package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-indicators/internal/hostabi"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/urfave/cli/v3"
)

func execCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Run a WASI guest module linked against the argo_indicators host functions",
		ArgsUsage: "[guest args...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "wasm", Aliases: []string{"w"}, Usage: "Path to the guest .wasm file", Required: true},
		},
		Action: execAction,
	}
}

func execAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	wasm, err := os.ReadFile(cmd.String("wasm"))
	if err != nil {
		return fmt.Errorf("failed to read guest module: %w", err)
	}

	host := hostabi.NewHost(log, metrics.NewMetrics())

	return host.RunGuest(ctx, wasm, hostabi.GuestOptions{
		Args:   cmd.Args().Slice(),
		Stdout: cmd.Root().Writer,
		Stderr: cmd.Root().ErrWriter,
	})
}
