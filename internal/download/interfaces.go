package download

import (
	"context"
	"time"

	"github.com/ytget/ytwav/internal/extractor"
	"github.com/ytget/ytwav/internal/model"
)

// Extractor fetches the source media for a URL
type Extractor interface {
	Fetch(ctx context.Context, url string, opts extractor.Options) (*extractor.Media, error)
}

// Updater updates the extraction library
type Updater interface {
	Update(ctx context.Context) error
}

// Transcoder converts a fetched source into a WAV file
type Transcoder interface {
	Available() error
	Transcode(ctx context.Context, src, dst string, req *model.DownloadRequest) error
}

// Recorder persists request outcomes
type Recorder interface {
	Record(success bool, class model.Classification) error
}

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error
