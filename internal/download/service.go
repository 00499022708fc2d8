package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/ytwav/internal/extractor"
	"github.com/ytget/ytwav/internal/logging"
	"github.com/ytget/ytwav/internal/model"
	"github.com/ytget/ytwav/internal/platform"
	"github.com/ytget/ytwav/internal/transcode"
)

// Timing of the terminal update step
const (
	UpdateTimeout      = 60 * time.Second
	PostUpdateCooldown = 3 * time.Second
)

// Service runs download requests through the retry profiles
type Service struct {
	extractor  Extractor
	updater    Updater
	transcoder Transcoder
	recorder   Recorder
	sleep      Sleeper
	log        *slog.Logger
	profiles   []model.RetryProfile
	onProgress func(requestID string, percent float64)
}

// NewService creates a download service. log may be nil.
func NewService(ex Extractor, up Updater, tc Transcoder, log *slog.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		extractor:  ex,
		updater:    up,
		transcoder: tc,
		sleep:      contextSleep,
		log:        log,
		profiles:   model.RetryProfiles(),
	}
}

// SetRecorder sets the metrics recorder; nil disables recording
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

// SetSleeper replaces the wait function used between attempts
func (s *Service) SetSleeper(sleep Sleeper) {
	s.sleep = sleep
}

// SetProgressCallback sets the callback receiving download progress
func (s *Service) SetProgressCallback(callback func(requestID string, percent float64)) {
	s.onProgress = callback
}

// Download fetches req.URL and writes a WAV file into req.OutputDir. It
// never returns an error: failures are reported through the outcome.
func (s *Service) Download(ctx context.Context, req *model.DownloadRequest) model.DownloadOutcome {
	log := logging.ForRequest(s.log, req.ID, req.URL)
	ctx = logging.NewContext(ctx, log)

	out := model.DownloadOutcome{
		RequestID: req.ID,
		URL:       req.URL,
		StartedAt: time.Now(),
	}

	if err := req.Validate(); err != nil {
		return s.fail(ctx, out, model.ClassDownloadFailed, err)
	}

	if err := s.transcoder.Available(); err != nil {
		log.Error("ffmpeg is not available", "error", err)
		return s.fail(ctx, out, model.ClassTranscoderMissing, err)
	}

	if err := platform.CreateDirectoryIfNotExists(req.OutputDir); err != nil {
		return s.fail(ctx, out, Classify(err), fmt.Errorf("creating output directory: %w", err))
	}

	var opts extractor.Options
	for i, profile := range s.profiles {
		opts = s.buildOptions(req, profile)
		last := i == len(s.profiles)-1

		log.Info("download attempt",
			"attempt", i+1,
			"of", len(s.profiles),
			"sleep", profile.SleepDuration(),
			"identity", strings.TrimSpace(profile.IdentitySuffix),
		)

		out.Attempts++
		if s.attempt(ctx, req, opts, &out) {
			return s.finish(ctx, out)
		}

		if ctx.Err() != nil {
			return s.fail(ctx, out, model.ClassCanceled, ctx.Err())
		}
		if !out.Classification.IsRetryable() {
			return s.finish(ctx, out)
		}

		if out.Classification.NeedsExtraBackoff() && !last {
			backoff := profile.ForbiddenBackoff()
			log.Info("access forbidden, backing off", "wait", backoff)
			if err := s.sleep(ctx, backoff); err != nil {
				return s.fail(ctx, out, model.ClassCanceled, err)
			}
		}
	}

	return s.finalize(ctx, req, opts, out)
}

// finalize runs once every profile has failed: update yt-dlp, then make
// exactly one more attempt with the last options
func (s *Service) finalize(ctx context.Context, req *model.DownloadRequest, opts extractor.Options, out model.DownloadOutcome) model.DownloadOutcome {
	log := logging.FromContext(ctx)
	log.Warn("all retry profiles failed, updating yt-dlp", "attempts", out.Attempts)

	uctx, cancel := context.WithTimeout(ctx, UpdateTimeout)
	err := s.updater.Update(uctx)
	cancel()
	if err != nil {
		log.Error("yt-dlp update failed", "error", err)
		if ctx.Err() != nil {
			return s.fail(ctx, out, model.ClassCanceled, ctx.Err())
		}
		out.Err = errors.Join(out.Err, fmt.Errorf("update: %w", err))
		return s.finish(ctx, out)
	}

	out.Updated = true
	log.Info("yt-dlp updated, retrying once", "cooldown", PostUpdateCooldown)
	if err := s.sleep(ctx, PostUpdateCooldown); err != nil {
		return s.fail(ctx, out, model.ClassCanceled, err)
	}

	out.Attempts++
	s.attempt(ctx, req, opts, &out)
	if !out.Success && ctx.Err() != nil {
		return s.fail(ctx, out, model.ClassCanceled, ctx.Err())
	}
	return s.finish(ctx, out)
}

// attempt performs one fetch and transcode, recording the result in out
func (s *Service) attempt(ctx context.Context, req *model.DownloadRequest, opts extractor.Options, out *model.DownloadOutcome) bool {
	log := logging.FromContext(ctx)

	path, title, err := s.fetchAndTranscode(ctx, req, opts)
	if err != nil {
		out.Success = false
		out.Classification = Classify(err)
		out.Err = err
		log.Warn("attempt failed", "attempt", out.Attempts, "class", out.Classification, "error", err)
		return false
	}

	out.Success = true
	out.Classification = model.ClassNone
	out.Err = nil
	out.OutputPath = path
	out.Title = title
	return true
}

func (s *Service) fetchAndTranscode(ctx context.Context, req *model.DownloadRequest, opts extractor.Options) (string, string, error) {
	log := logging.FromContext(ctx)

	media, err := s.extractor.Fetch(ctx, req.URL, opts)
	if err != nil {
		return "", "", err
	}
	log.Debug("source downloaded", "path", media.Path, "title", media.Title)

	dst := filepath.Join(req.OutputDir, outputName(req, media))
	if err := s.transcoder.Transcode(ctx, media.Path, dst, req); err != nil {
		return "", media.Title, err
	}

	if !req.KeepSource && filepath.Clean(media.Path) != filepath.Clean(dst) {
		if err := platform.RemoveIfExists(media.Path); err != nil {
			log.Warn("could not remove source file", "path", media.Path, "error", err)
		}
	}

	return dst, media.Title, nil
}

func (s *Service) buildOptions(req *model.DownloadRequest, profile model.RetryProfile) extractor.Options {
	opts := BuildOptions(req, profile)
	if s.onProgress != nil {
		id := req.ID
		opts.OnProgress = func(percent float64) { s.onProgress(id, percent) }
	}
	return opts
}

func (s *Service) fail(ctx context.Context, out model.DownloadOutcome, class model.Classification, err error) model.DownloadOutcome {
	out.Success = false
	out.Classification = class
	out.Err = err
	return s.finish(ctx, out)
}

// finish stamps, logs and records the outcome
func (s *Service) finish(ctx context.Context, out model.DownloadOutcome) model.DownloadOutcome {
	log := logging.FromContext(ctx)
	out.FinishedAt = time.Now()

	if out.Success {
		log.Info("download complete",
			"output", out.OutputPath,
			"attempts", out.Attempts,
			"updated", out.Updated,
			"duration", out.Duration().Round(time.Millisecond),
		)
	} else {
		log.Error("download failed",
			"class", out.Classification,
			"attempts", out.Attempts,
			"updated", out.Updated,
			"error", out.ErrorString(),
		)
	}

	if s.recorder != nil && out.Classification != model.ClassCanceled {
		if err := s.recorder.Record(out.Success, out.Classification); err != nil {
			log.Warn("could not record metrics", "error", err)
		}
	}

	return out
}

// Classify maps an attempt error to its classification
func Classify(err error) model.Classification {
	switch {
	case err == nil:
		return model.ClassNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return model.ClassCanceled
	case errors.Is(err, extractor.ErrAccessForbidden):
		return model.ClassAccessForbidden
	case errors.Is(err, transcode.ErrTranscoderMissing):
		return model.ClassTranscoderMissing
	case errors.Is(err, extractor.ErrDownloadFailed), errors.Is(err, transcode.ErrTranscodeFailed):
		return model.ClassDownloadFailed
	}
	return model.Classification(typeName(err))
}

// typeName returns the Go type of the innermost wrapped error
func typeName(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}

// outputName picks the WAV file name: the explicit name, else the video
// title, else the source file's base name
func outputName(req *model.DownloadRequest, media *extractor.Media) string {
	name := req.OutputName
	if name == "" {
		name = media.Title
	}
	if strings.TrimSpace(name) == "" {
		base := filepath.Base(media.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return platform.WAVFilename(name)
}

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
