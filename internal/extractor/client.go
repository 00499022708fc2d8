// Package extractor drives yt-dlp through github.com/lrstanley/go-ytdlp.
// It fetches the best audio stream of a video, reads metadata without
// downloading, and manages the yt-dlp binary itself.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// yt-dlp output template
const (
	OutputTemplate = "%(title).200B.%(ext)s"
)

// Options are the per-attempt yt-dlp parameters
type Options struct {
	OutputDir string
	Format    string
	UserAgent string
	// SleepInterval is the delay yt-dlp applies between requests
	SleepInterval time.Duration
	// Retries is forwarded to --retries and --fragment-retries
	Retries int
	// OnProgress, when set, receives download progress in percent
	OnProgress func(percent float64)
}

// Media is a downloaded source file
type Media struct {
	Title string
	Path  string
}

// VideoInfo is video metadata read without downloading
type VideoInfo struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Uploader  string  `json:"uploader"`
	ViewCount int64   `json:"view_count"`
}

// Client runs yt-dlp commands
type Client struct{}

// New returns a yt-dlp client
func New() *Client {
	return &Client{}
}

// Ensure resolves a yt-dlp binary, preferring one on PATH and otherwise
// downloading a managed copy
func Ensure(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{}); err != nil {
		return fmt.Errorf("installing yt-dlp: %w", err)
	}
	return nil
}

// Fetch downloads the audio stream of url into opts.OutputDir
func (c *Client) Fetch(ctx context.Context, url string, opts Options) (*Media, error) {
	dl := ytdlp.New().
		NoPlaylist().
		WindowsFilenames().
		PrintJSON().
		Format(opts.Format).
		Output(filepath.Join(opts.OutputDir, OutputTemplate))

	if opts.UserAgent != "" {
		dl = dl.AddHeaders("User-Agent:" + opts.UserAgent)
	}
	if opts.SleepInterval > 0 {
		dl = dl.SleepInterval(opts.SleepInterval.Seconds())
	}
	if opts.Retries > 0 {
		dl = dl.Retries(strconv.Itoa(opts.Retries)).
			FragmentRetries(strconv.Itoa(opts.Retries))
	}
	if opts.OnProgress != nil {
		dl.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
			if update.TotalBytes > 0 {
				opts.OnProgress(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100)
			}
		})
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, newDownloadError(url, err, stderrOf(result))
	}

	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 {
		return nil, newDownloadError(url, fmt.Errorf("no extracted info: %v", err), result.Stderr)
	}

	media := &Media{}
	if info[0].Title != nil {
		media.Title = *info[0].Title
	}
	if info[0].Filename != nil {
		media.Path = *info[0].Filename
	}
	if media.Path == "" {
		return nil, newDownloadError(url, fmt.Errorf("yt-dlp did not report an output file"), result.Stderr)
	}
	return media, nil
}

// Info reads metadata for url without downloading the media
func (c *Client) Info(ctx context.Context, url string) (*VideoInfo, error) {
	result, err := ytdlp.New().
		NoPlaylist().
		SkipDownload().
		DumpJSON().
		Run(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, newDownloadError(url, err, stderrOf(result))
	}

	var info VideoInfo
	if err := json.Unmarshal([]byte(firstJSONLine(result.Stdout)), &info); err != nil {
		return nil, fmt.Errorf("parsing yt-dlp metadata: %w", err)
	}
	return &info, nil
}

// Update runs yt-dlp's self-update
func (c *Client) Update(ctx context.Context) error {
	result, err := ytdlp.New().Update().Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("yt-dlp update: %w", ctx.Err())
		}
		return fmt.Errorf("yt-dlp update: %w: %s", err, lastLine(stderrOf(result)))
	}
	return nil
}

// Version returns the installed yt-dlp version
func (c *Client) Version(ctx context.Context) (string, error) {
	result, err := ytdlp.New().Version().Run(ctx)
	if err != nil {
		return "", fmt.Errorf("yt-dlp --version: %w", err)
	}
	return strings.TrimSpace(result.Stdout), nil
}

func stderrOf(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}
	return result.Stderr
}

// firstJSONLine returns the first line of s that looks like a JSON object
func firstJSONLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "{") {
			return line
		}
	}
	return strings.TrimSpace(s)
}
