package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ytget/ytwav/internal/config"
	"github.com/ytget/ytwav/internal/extractor"
	"github.com/ytget/ytwav/internal/logging"
	"github.com/ytget/ytwav/internal/maintenance"
	"github.com/ytget/ytwav/internal/metrics"
	"github.com/ytget/ytwav/internal/transcode"
)

const exitUsage = 2

var errNoMetricsFile = errors.New("--stats needs a metrics file (--metrics or YTWAV_METRICS_FILE)")

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, exitUsage)
	}

	log, closeLog, err := logging.New(logging.Config{
		File:    cfg.LogFile,
		Verbose: c.Bool(flagVerbose),
	})
	if err != nil {
		return cli.Exit(err, exitUsage)
	}
	defer closeLog()

	ctx := logging.NewContext(c.Context, log)

	if c.Bool(flagStats) {
		if cfg.MetricsFile == "" {
			return cli.Exit(errNoMetricsFile, exitUsage)
		}
		m, err := metrics.Load(cfg.MetricsFile)
		if err != nil {
			return cli.Exit(fmt.Errorf("loading metrics: %w", err), 1)
		}
		metrics.Print(log, m)
		return nil
	}

	if err := extractor.Ensure(ctx); err != nil {
		log.Warn("could not resolve yt-dlp", "error", err)
	}

	svc := maintenance.NewService(
		extractor.New(),
		transcode.New(cfg.FFmpeg),
		maintenance.NewGitHubReleases(""),
		cfg.StatusFile,
		log,
	)

	if c.Bool(flagTestOnly) {
		checks := maintenance.Checks{
			FFmpeg:       svc.CheckFFmpeg(ctx),
			DownloadTest: svc.TestDownloadCapability(ctx),
		}
		if code := maintenance.ExitCode(maintenance.OverallStatus(checks)); code != 0 {
			return cli.Exit("", code)
		}
		return nil
	}

	if prev, err := svc.LoadStatus(); err != nil {
		log.Warn("previous status unreadable", "error", err)
	} else if prev != nil {
		log.Info("previous maintenance", "timestamp", prev.Timestamp, "overall", prev.Overall)
	}

	overall := svc.Run(ctx, !c.Bool(flagNoUpdate))
	if code := maintenance.ExitCode(overall); code != 0 {
		return cli.Exit("", code)
	}
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return nil, err
	}

	if cfg.LogFile == "" {
		cfg.LogFile = config.DefaultMaintLog
	}
	if c.IsSet(flagLogFile) {
		cfg.LogFile = c.String(flagLogFile)
	}
	if c.IsSet(flagStatus) {
		cfg.StatusFile = c.String(flagStatus)
	}
	if c.IsSet(flagMetrics) {
		cfg.MetricsFile = c.String(flagMetrics)
	}
	return cfg, nil
}
