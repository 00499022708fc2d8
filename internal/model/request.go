package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Audio defaults shared by the CLI, the GUI and the config layer
const (
	DefaultOutputDir  = "wav_out"
	DefaultSampleRate = 48000
	DefaultChannels   = 2
	DefaultBitDepth   = 16
	DefaultMaxRetries = 5
)

// ffmpeg sample formats. 24-bit output is written as s32, which ffmpeg
// stores as 24-bit-safe PCM inside the WAV container.
const (
	SampleFormat16 = "s16"
	SampleFormat24 = "s32"
)

// RequestIDPrefix is prepended to generated request IDs
const RequestIDPrefix = "req-"

// Validation errors returned by DownloadRequest.Validate
var (
	ErrEmptyURL          = errors.New("url is empty")
	ErrInvalidChannels   = errors.New("channels must be 1 or 2")
	ErrInvalidBitDepth   = errors.New("bit depth must be 16 or 24")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)

// DownloadRequest describes a single URL to fetch and the WAV format to
// produce. It is created per invocation and never persisted.
type DownloadRequest struct {
	ID         string
	URL        string
	OutputDir  string
	SampleRate int
	Channels   int    // 1 = mono, 2 = stereo
	BitDepth   int    // 16 or 24
	KeepSource bool   // keep the downloaded container next to the WAV
	MaxRetries int    // forwarded to yt-dlp's own retry flags
	OutputName string // optional file name; the video title is used when empty
}

// NewDownloadRequest returns a request for url with default audio settings
func NewDownloadRequest(url string) *DownloadRequest {
	return &DownloadRequest{
		ID:         generateRequestID(),
		URL:        strings.TrimSpace(url),
		OutputDir:  DefaultOutputDir,
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		BitDepth:   DefaultBitDepth,
		MaxRetries: DefaultMaxRetries,
	}
}

// WithURL returns a copy of the request for another URL with a fresh ID.
// Batch runs use it to share one set of audio settings.
func (r *DownloadRequest) WithURL(url string) *DownloadRequest {
	c := *r
	c.ID = generateRequestID()
	c.URL = strings.TrimSpace(url)
	return &c
}

// Validate checks the request against the supported audio formats
func (r *DownloadRequest) Validate() error {
	if r.URL == "" {
		return ErrEmptyURL
	}
	if r.Channels != 1 && r.Channels != 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidChannels, r.Channels)
	}
	if r.BitDepth != 16 && r.BitDepth != 24 {
		return fmt.Errorf("%w: got %d", ErrInvalidBitDepth, r.BitDepth)
	}
	if r.SampleRate <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleRate, r.SampleRate)
	}
	return nil
}

// SampleFormat returns the ffmpeg -sample_fmt value for the bit depth
func (r *DownloadRequest) SampleFormat() string {
	if r.BitDepth == 24 {
		return SampleFormat24
	}
	return SampleFormat16
}

// generateRequestID generates a time-ordered request ID using UUID v7
func generateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return RequestIDPrefix + uuid.NewString()
	}
	return RequestIDPrefix + id.String()
}
