// Package transcode converts downloaded audio containers to PCM WAV by
// running ffmpeg as a subprocess.
package transcode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/ytget/ytwav/internal/model"
)

// FFmpeg constants
const (
	// Executable
	FFmpegCommand = "ffmpeg"

	// Flags
	OverwriteFlag  = "-y"
	NoVideoFlag    = "-vn"
	VersionFlag    = "-version"
	HideBannerFlag = "-hide_banner"

	// Progress reporting
	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="

	// Number of trailing stderr lines kept for error messages
	stderrTailLines = 10
)

var (
	// ErrTranscoderMissing means the ffmpeg executable cannot be found
	ErrTranscoderMissing = errors.New("ffmpeg not found")

	// ErrTranscodeFailed means ffmpeg ran but did not produce the output
	ErrTranscodeFailed = errors.New("transcode failed")
)

// FFmpeg runs ffmpeg conversions
type FFmpeg struct {
	binary   string
	lookPath func(string) (string, error)

	// OnProgress, when set, receives the processed media time in seconds
	OnProgress func(seconds float64)
}

// New returns a transcoder invoking binary; empty means "ffmpeg" on PATH
func New(binary string) *FFmpeg {
	if binary == "" {
		binary = FFmpegCommand
	}
	return &FFmpeg{binary: binary, lookPath: exec.LookPath}
}

// Binary returns the configured executable name or path
func (f *FFmpeg) Binary() string {
	return f.binary
}

// Available reports whether the ffmpeg executable can be resolved
func (f *FFmpeg) Available() error {
	if _, err := f.lookPath(f.binary); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTranscoderMissing, f.binary, err)
	}
	return nil
}

// Version returns the first line of `ffmpeg -version`
func (f *FFmpeg) Version(ctx context.Context) (string, error) {
	if err := f.Available(); err != nil {
		return "", err
	}

	out, err := exec.CommandContext(ctx, f.binary, VersionFlag).Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg found but -version failed: %w", err)
	}

	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	return strings.TrimSpace(firstLine), nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments for a WAV conversion
func BuildFFmpegArgs(inputPath, outputPath string, sampleRate, channels int, sampleFormat string) []string {
	return []string{
		HideBannerFlag,
		OverwriteFlag,
		"-i", inputPath,
		NoVideoFlag,
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-sample_fmt", sampleFormat,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	}
}

// Transcode converts src to a WAV file at dst using the request's sample
// rate, channel count and bit depth. A partial output is removed on failure.
func (f *FFmpeg) Transcode(ctx context.Context, src, dst string, req *model.DownloadRequest) error {
	if err := f.Available(); err != nil {
		return err
	}

	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("%w: input file does not exist: %s", ErrTranscodeFailed, src)
	}

	args := BuildFFmpegArgs(src, dst, req.SampleRate, req.Channels, req.SampleFormat())
	cmd := exec.CommandContext(ctx, f.binary, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: failed to start ffmpeg: %v", ErrTranscodeFailed, err)
	}

	var (
		wg   sync.WaitGroup
		tail []string
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		tail = f.monitorProgress(stderr)
	}()

	wg.Wait()
	err = cmd.Wait()

	if ctx.Err() != nil {
		os.Remove(dst)
		return ctx.Err()
	}
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("%w: %v: %s", ErrTranscodeFailed, err, strings.Join(tail, " | "))
	}
	return nil
}

// monitorProgress forwards ffmpeg progress lines and returns the last
// non-progress lines for error reporting
func (f *FFmpeg) monitorProgress(stderr io.Reader) []string {
	scanner := bufio.NewScanner(stderr)
	var tail []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Parse progress line: out_time_us=123456
		if strings.HasPrefix(line, ProgressTimePrefix) {
			micros, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
			if err == nil && f.OnProgress != nil {
				f.OnProgress(float64(micros) / 1000000.0)
			}
			continue
		}
		if strings.Contains(line, "=") && !strings.Contains(line, " ") {
			// Other key=value progress fields
			continue
		}

		tail = append(tail, line)
		if len(tail) > stderrTailLines {
			tail = tail[1:]
		}
	}
	return tail
}
