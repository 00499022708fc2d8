// Package maintenance checks the health of the download toolchain: the
// yt-dlp version, ffmpeg, and whether metadata can still be extracted.
package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ytget/ytwav/internal/extractor"
	"github.com/ytget/ytwav/internal/logging"
	"github.com/ytget/ytwav/internal/metrics"
	"github.com/ytget/ytwav/internal/platform"
	"github.com/ytget/ytwav/internal/transcode"
)

// Check statuses
const (
	StatusOK       = "OK"
	StatusError    = "ERROR"
	StatusNotFound = "NOT_FOUND"
	StatusProblem  = "PROBLEM"
)

// Overall statuses
const (
	OverallOK              = "OK"
	OverallFFmpegProblem   = "FFMPEG_PROBLEM"
	OverallDownloadProblem = "DOWNLOAD_PROBLEM"
)

// Timeouts
const (
	UpdateTimeout      = 300 * time.Second
	FFmpegCheckTimeout = 10 * time.Second
)

// MinSuccessRate is the capability test pass mark in percent
const MinSuccessRate = 80.0

// DefaultTestURLs are long-lived videos used by the capability test
var DefaultTestURLs = []string{
	"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	"https://www.youtube.com/watch?v=9bZkp7q19f0",
}

// YtDLP is the subset of the extractor client maintenance needs
type YtDLP interface {
	Version(ctx context.Context) (string, error)
	Update(ctx context.Context) error
	Info(ctx context.Context, url string) (*extractor.VideoInfo, error)
}

// FFmpeg reports the transcoder version
type FFmpeg interface {
	Version(ctx context.Context) (string, error)
}

// ReleaseSource returns the latest published yt-dlp version
type ReleaseSource interface {
	Latest(ctx context.Context) (string, error)
}

// VersionInfo compares the installed and the latest yt-dlp
type VersionInfo struct {
	Current     string `json:"current"`
	Latest      string `json:"latest"`
	NeedsUpdate bool   `json:"needs_update"`
}

// UpdateResult records a self-update run
type UpdateResult struct {
	Success bool `json:"success"`
}

// FFmpegStatus is the result of the ffmpeg check
type FFmpegStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DownloadTest is the result of the capability test
type DownloadTest struct {
	SuccessCount int     `json:"success_count"`
	TotalTests   int     `json:"total_tests"`
	SuccessRate  float64 `json:"success_rate"`
	Status       string  `json:"status"`
}

// Checks groups the individual check results
type Checks struct {
	YtdlpVersion *VersionInfo  `json:"ytdlp_version"`
	YtdlpUpdate  *UpdateResult `json:"ytdlp_update,omitempty"`
	FFmpeg       FFmpegStatus  `json:"ffmpeg"`
	DownloadTest DownloadTest  `json:"download_test"`
}

// Status is the persisted maintenance report
type Status struct {
	Timestamp string `json:"timestamp"`
	Checks    Checks `json:"checks"`
	Overall   string `json:"overall_status"`
}

// Service runs maintenance checks
type Service struct {
	ytdlp      YtDLP
	ffmpeg     FFmpeg
	releases   ReleaseSource
	statusFile string
	testURLs   []string
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a maintenance service writing its report to statusFile
func NewService(yt YtDLP, ff FFmpeg, releases ReleaseSource, statusFile string, log *slog.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		ytdlp:      yt,
		ffmpeg:     ff,
		releases:   releases,
		statusFile: statusFile,
		testURLs:   DefaultTestURLs,
		log:        log,
		now:        time.Now,
	}
}

// SetTestURLs replaces the capability test URLs
func (s *Service) SetTestURLs(urls []string) {
	s.testURLs = urls
}

// CheckVersion compares the installed yt-dlp with the latest release
func (s *Service) CheckVersion(ctx context.Context) (*VersionInfo, error) {
	current, err := s.ytdlp.Version(ctx)
	if err != nil {
		s.log.Error("checking yt-dlp version failed", "error", err)
		return nil, err
	}

	latest, err := s.releases.Latest(ctx)
	if err != nil {
		s.log.Error("checking latest yt-dlp release failed", "error", err)
		return nil, fmt.Errorf("latest release: %w", err)
	}

	s.log.Info("yt-dlp version", "current", current, "latest", latest)
	return &VersionInfo{
		Current:     current,
		Latest:      latest,
		NeedsUpdate: current != latest,
	}, nil
}

// Update runs the yt-dlp self-update bounded by UpdateTimeout
func (s *Service) Update(ctx context.Context) bool {
	s.log.Info("updating yt-dlp")

	ctx, cancel := context.WithTimeout(ctx, UpdateTimeout)
	defer cancel()

	if err := s.ytdlp.Update(ctx); err != nil {
		s.log.Error("yt-dlp update failed", "error", err)
		return false
	}
	s.log.Info("yt-dlp updated")
	return true
}

// CheckFFmpeg reports whether ffmpeg is installed and responding
func (s *Service) CheckFFmpeg(ctx context.Context) FFmpegStatus {
	ctx, cancel := context.WithTimeout(ctx, FFmpegCheckTimeout)
	defer cancel()

	version, err := s.ffmpeg.Version(ctx)
	switch {
	case errors.Is(err, transcode.ErrTranscoderMissing):
		s.log.Error("ffmpeg not found")
		return FFmpegStatus{Status: StatusNotFound, Error: "FFmpeg not installed"}
	case err != nil:
		s.log.Error("ffmpeg check failed", "error", err)
		return FFmpegStatus{Status: StatusError, Error: err.Error()}
	case version == "":
		s.log.Error("ffmpeg did not respond")
		return FFmpegStatus{Status: StatusError, Error: "No response"}
	}

	s.log.Info("ffmpeg OK", "version", version)
	return FFmpegStatus{Status: StatusOK, Version: version}
}

// TestDownloadCapability extracts metadata for the test URLs without
// downloading
func (s *Service) TestDownloadCapability(ctx context.Context) DownloadTest {
	total := len(s.testURLs)
	ok := 0

	for i, url := range s.testURLs {
		s.log.Info("capability test", "test", i+1, "of", total, "url", url)

		info, err := s.ytdlp.Info(ctx, url)
		switch {
		case err != nil:
			s.log.Error("capability test failed", "test", i+1, "error", err)
		case info == nil || info.Title == "":
			s.log.Warn("capability test returned no video information", "test", i+1)
		default:
			s.log.Info("capability test OK", "test", i+1, "title", platform.ASCIITitle(info.Title))
			ok++
		}
	}

	var rate float64
	if total > 0 {
		rate = float64(ok) / float64(total) * 100
	}

	status := StatusProblem
	if rate >= MinSuccessRate {
		status = StatusOK
	}

	s.log.Info("capability test result", "passed", ok, "total", total, "rate", fmt.Sprintf("%.1f%%", rate))
	return DownloadTest{SuccessCount: ok, TotalTests: total, SuccessRate: rate, Status: status}
}

// Run performs the full maintenance pass and returns the overall status
func (s *Service) Run(ctx context.Context, autoUpdate bool) string {
	s.log.Info("starting maintenance")

	status := &Status{Timestamp: s.now().Format(time.RFC3339)}

	s.log.Info("[1/4] checking yt-dlp version")
	version, _ := s.CheckVersion(ctx)
	status.Checks.YtdlpVersion = version

	if autoUpdate && version != nil && version.NeedsUpdate {
		s.log.Info("[2/4] updating yt-dlp")
		status.Checks.YtdlpUpdate = &UpdateResult{Success: s.Update(ctx)}
	}

	s.log.Info("[3/4] checking ffmpeg")
	status.Checks.FFmpeg = s.CheckFFmpeg(ctx)

	s.log.Info("[4/4] testing downloads")
	status.Checks.DownloadTest = s.TestDownloadCapability(ctx)

	status.Overall = OverallStatus(status.Checks)

	if err := s.SaveStatus(status); err != nil {
		s.log.Error("saving status failed", "error", err)
	}

	current := "error"
	if version != nil {
		current = version.Current
	}
	s.log.Info("maintenance summary",
		"ytdlp", current,
		"ffmpeg", status.Checks.FFmpeg.Status,
		"downloads", status.Checks.DownloadTest.Status,
		"rate", fmt.Sprintf("%.1f%%", status.Checks.DownloadTest.SuccessRate),
		"overall", status.Overall,
	)
	return status.Overall
}

// OverallStatus folds the checks into one status; an ffmpeg problem wins
// over a download problem
func OverallStatus(c Checks) string {
	switch {
	case c.FFmpeg.Status != StatusOK:
		return OverallFFmpegProblem
	case c.DownloadTest.Status != StatusOK:
		return OverallDownloadProblem
	}
	return OverallOK
}

// ExitCode returns 0 only for an OK overall status
func ExitCode(overall string) int {
	if overall == OverallOK {
		return 0
	}
	return 1
}

// SaveStatus writes the report to the status file
func (s *Service) SaveStatus(status *Status) error {
	return metrics.WriteJSONFile(s.statusFile, status)
}

// LoadStatus reads the previous report; a missing file yields nil
func (s *Service) LoadStatus() (*Status, error) {
	data, err := os.ReadFile(s.statusFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading status file: %w", err)
	}

	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("parsing status file: %w", err)
	}
	return &status, nil
}
