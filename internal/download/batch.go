package download

import (
	"context"

	"github.com/ytget/ytwav/internal/model"
)

// Process exit codes for a batch run
const (
	ExitOK        = 0
	ExitAllFailed = 1
	ExitUsage     = 2
)

// Summary aggregates the outcomes of a batch
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Outcomes  []model.DownloadOutcome
}

// ExitCode returns 0 when at least one download succeeded, 1 when all
// failed and 2 when there was nothing to do
func (s Summary) ExitCode() int {
	switch {
	case s.Total == 0:
		return ExitUsage
	case s.Succeeded == 0:
		return ExitAllFailed
	}
	return ExitOK
}

// Partial reports whether some but not all downloads succeeded
func (s Summary) Partial() bool {
	return s.Succeeded > 0 && s.Failed > 0
}

// RunBatch downloads urls one after another using base's audio settings.
// It stops early when ctx is cancelled; unattempted URLs are not counted.
func (s *Service) RunBatch(ctx context.Context, base *model.DownloadRequest, urls []string) Summary {
	var sum Summary

	s.log.Info("starting batch", "files", len(urls))
	for i, url := range urls {
		if ctx.Err() != nil {
			s.log.Warn("batch interrupted", "remaining", len(urls)-i)
			break
		}

		s.log.Info("processing", "item", i+1, "of", len(urls), "url", url)
		out := s.Download(ctx, base.WithURL(url))

		sum.Total++
		if out.Success {
			sum.Succeeded++
		} else {
			sum.Failed++
		}
		sum.Outcomes = append(sum.Outcomes, out)
	}

	switch {
	case sum.Total > 0 && sum.Failed == 0:
		s.log.Info("all downloads completed", "succeeded", sum.Succeeded, "total", sum.Total)
	case sum.Partial():
		s.log.Warn("partial success", "succeeded", sum.Succeeded, "total", sum.Total)
	default:
		s.log.Error("all downloads failed", "total", sum.Total)
	}
	return sum
}
