package download

import (
	"github.com/ytget/ytwav/internal/extractor"
	"github.com/ytget/ytwav/internal/model"
)

// BaseUserAgent is the browser identity every profile suffix is appended to
const BaseUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// AudioFormat prefers audio-only streams and falls back to a small video
const AudioFormat = "bestaudio[ext=m4a]/bestaudio[ext=webm]/bestaudio/best[height<=720]"

// BuildOptions merges the request's static parameters with a retry profile
func BuildOptions(req *model.DownloadRequest, profile model.RetryProfile) extractor.Options {
	return extractor.Options{
		OutputDir:     req.OutputDir,
		Format:        AudioFormat,
		UserAgent:     BaseUserAgent + profile.IdentitySuffix,
		SleepInterval: profile.SleepDuration(),
		Retries:       req.MaxRetries,
	}
}
