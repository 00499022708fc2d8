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
	flagList     = "list"
	flagOut      = "out"
	flagRate     = "sr"
	flagChannels = "ch"
	flagBitDepth = "bit"
	flagKeepSrc  = "keep-src"
	flagRetries  = "retries"
	flagMetrics  = "metrics"
	flagPlaylist = "playlist"
	flagConfig   = "config"
	flagLogFile  = "log-file"
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
		Name:      "ytwav",
		Usage:     "download YouTube audio and convert it to WAV",
		UsageText: "ytwav [options] [URL]",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagList,
				Usage: "text file with one URL per line (# starts a comment)",
			},
			&cli.StringFlag{
				Name:    flagOut,
				Aliases: []string{"o"},
				Usage:   "output directory",
				Value:   "wav_out",
			},
			&cli.IntFlag{
				Name:  flagRate,
				Usage: "sample rate in Hz",
				Value: 48000,
			},
			&cli.IntFlag{
				Name:  flagChannels,
				Usage: "channels: 1=mono, 2=stereo",
				Value: 2,
			},
			&cli.IntFlag{
				Name:  flagBitDepth,
				Usage: "WAV bit depth: 16 or 24",
				Value: 16,
			},
			&cli.BoolFlag{
				Name:  flagKeepSrc,
				Usage: "keep the downloaded source file next to the WAV",
			},
			&cli.IntFlag{
				Name:  flagRetries,
				Usage: "retries passed to yt-dlp for each attempt",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  flagMetrics,
				Usage: "JSON file collecting success statistics",
			},
			&cli.BoolFlag{
				Name:  flagPlaylist,
				Usage: "expand playlist URLs into their videos",
			},
			&cli.StringFlag{
				Name:  flagConfig,
				Usage: "YAML configuration file",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also append logs to this file",
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
