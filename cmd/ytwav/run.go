package main

import (
	"github.com/urfave/cli/v2"

	"github.com/ytget/ytwav/internal/config"
	"github.com/ytget/ytwav/internal/download"
	"github.com/ytget/ytwav/internal/extractor"
	"github.com/ytget/ytwav/internal/logging"
	"github.com/ytget/ytwav/internal/metrics"
	"github.com/ytget/ytwav/internal/platform"
	"github.com/ytget/ytwav/internal/transcode"
)

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, download.ExitUsage)
	}

	log, closeLog, err := logging.New(logging.Config{
		File:    cfg.LogFile,
		Verbose: c.Bool(flagVerbose),
	})
	if err != nil {
		return cli.Exit(err, download.ExitUsage)
	}
	defer closeLog()

	ctx := logging.NewContext(c.Context, log)

	base := cfg.Request("")
	download.LogHints(log, base)

	single := c.Args().First()
	listFile := c.String(flagList)
	urls := platform.LoadAllURLs(single, listFile, log)
	if c.Bool(flagPlaylist) {
		urls = platform.NewPlaylistParserService().ExpandPlaylists(ctx, urls, log)
	}

	if len(urls) == 0 {
		if single == "" && listFile == "" {
			log.Error("provide a URL or a list file (--list)")
		} else {
			log.Error("no valid URLs found")
		}
		return cli.Exit("", download.ExitUsage)
	}

	if err := extractor.Ensure(ctx); err != nil {
		log.Warn("could not resolve yt-dlp", "error", err)
	}

	client := extractor.New()
	svc := download.NewService(client, client, transcode.New(cfg.FFmpeg), log)
	if cfg.MetricsFile != "" {
		svc.SetRecorder(metrics.NewRecorder(cfg.MetricsFile))
	}
	if c.Bool(flagVerbose) {
		svc.SetProgressCallback(func(requestID string, percent float64) {
			log.Debug("progress", "request", requestID, "percent", int(percent))
		})
	}

	sum := svc.RunBatch(ctx, base, urls)
	log.Info("finished", "succeeded", sum.Succeeded, "total", sum.Total)

	if code := sum.ExitCode(); code != download.ExitOK {
		return cli.Exit("", code)
	}
	return nil
}

// loadConfig layers file and environment configuration under the flags
// the user set explicitly
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return nil, err
	}

	if c.IsSet(flagOut) {
		cfg.OutputDir = c.String(flagOut)
	}
	if c.IsSet(flagRate) {
		cfg.SampleRate = c.Int(flagRate)
	}
	if c.IsSet(flagChannels) {
		cfg.Channels = c.Int(flagChannels)
	}
	if c.IsSet(flagBitDepth) {
		cfg.BitDepth = c.Int(flagBitDepth)
	}
	if c.IsSet(flagKeepSrc) {
		cfg.KeepSource = c.Bool(flagKeepSrc)
	}
	if c.IsSet(flagRetries) {
		cfg.Retries = c.Int(flagRetries)
	}
	if c.IsSet(flagMetrics) {
		cfg.MetricsFile = c.String(flagMetrics)
	}
	if c.IsSet(flagLogFile) {
		cfg.LogFile = c.String(flagLogFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
