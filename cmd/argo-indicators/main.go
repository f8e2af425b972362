package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "argo-indicators",
		Usage:   "Calculate technical indicators over market data",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("ARGO_INDICATORS_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			computeCommand(),
			runCommand(),
			serveCommand(),
			execCommand(),
			schemaCommand(),
			versionCommand(),
		},
	}
}

// newLogger builds the logger for a command from the global --log-level flag.
// Logs go to stderr so command output on stdout stays machine readable.
func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	return logger.NewLoggerWithLevel(cmd.String("log-level"))
}

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
