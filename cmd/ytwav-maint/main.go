package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// Flag names
const (
	flagNoUpdate = "no-update"
	flagTestOnly = "test-only"
	flagStats    = "stats"
	flagStatus   = "status"
	flagMetrics  = "metrics"
	flagLogFile  = "log-file"
	flagConfig   = "config"
	flagVerbose  = "verbose"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ytwav-maint",
		Usage:   "check and update the ytwav download toolchain",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagNoUpdate,
				Usage: "do not update yt-dlp even when a newer release exists",
			},
			&cli.BoolFlag{
				Name:  flagTestOnly,
				Usage: "only run the download capability test",
			},
			&cli.BoolFlag{
				Name:  flagStats,
				Usage: "print success statistics from the metrics file and exit",
			},
			&cli.StringFlag{
				Name:  flagStatus,
				Usage: "maintenance status file",
			},
			&cli.StringFlag{
				Name:  flagMetrics,
				Usage: "metrics file read by --stats",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also append logs to this file",
			},
			&cli.StringFlag{
				Name:  flagConfig,
				Usage: "YAML configuration file",
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
		},
		Action: run,
	}
}
