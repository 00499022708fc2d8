package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytwav/internal/config"
	"github.com/ytget/ytwav/internal/download"
	"github.com/ytget/ytwav/internal/extractor"
	"github.com/ytget/ytwav/internal/logging"
	"github.com/ytget/ytwav/internal/metrics"
	"github.com/ytget/ytwav/internal/transcode"
	"github.com/ytget/ytwav/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const AppID = "com.ytget.ytwav"

func main() {
	// Audio settings come from the app preferences; the environment and
	// config file only supply ffmpeg, metrics and logging
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	log, closeLog, err := logging.New(logging.Config{File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(2)
	}
	defer closeLog()

	log.Info("ytwav starting", "version", version)

	ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
	defer cancel()

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myWindow := myApp.NewWindow("ytwav")

	if err := extractor.Ensure(ctx); err != nil {
		log.Warn("could not resolve yt-dlp", "error", err)
	}

	client := extractor.New()
	ffmpeg := transcode.New(cfg.FFmpeg)
	downloadSvc := download.NewService(client, client, ffmpeg, log)
	if cfg.MetricsFile != "" {
		downloadSvc.SetRecorder(metrics.NewRecorder(cfg.MetricsFile))
	}

	root := ui.NewRootUI(ctx, myApp, myWindow, downloadSvc, ffmpeg)
	downloadSvc.SetProgressCallback(func(_ string, percent float64) {
		root.SetProgress(percent)
	})

	// A missing ffmpeg leaves only the error dialog, which quits on close
	root.CheckDependencies()

	myWindow.ShowAndRun()
}
