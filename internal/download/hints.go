package download

import (
	"log/slog"

	"github.com/ytget/ytwav/internal/model"
)

// LogHints logs notes about the chosen output format before a run
func LogHints(log *slog.Logger, req *model.DownloadRequest) {
	if req.BitDepth == 24 {
		log.Warn("using 24-bit audio: files will be about 50% larger")
	}
	if req.Channels == 1 {
		log.Info("forcing mono audio (1 channel)")
	}
	log.Info("configuration",
		"sample_rate", req.SampleRate,
		"channels", req.Channels,
		"bit_depth", req.BitDepth,
		"output", req.OutputDir,
	)
}
