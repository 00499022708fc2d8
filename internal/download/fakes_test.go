package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/ytget/ytwav/internal/extractor"
	"github.com/ytget/ytwav/internal/model"
	"github.com/ytget/ytwav/internal/transcode"
)

// fakeExtractor returns results[i] for call i, repeating the last one
type fakeExtractor struct {
	results []error
	calls   []extractor.Options
}

func (f *fakeExtractor) Fetch(ctx context.Context, url string, opts extractor.Options) (*extractor.Media, error) {
	f.calls = append(f.calls, opts)

	err := f.results[len(f.results)-1]
	if i := len(f.calls) - 1; i < len(f.results) {
		err = f.results[i]
	}
	if err != nil {
		return nil, err
	}

	path := filepath.Join(opts.OutputDir, "Song.m4a")
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		return nil, err
	}
	return &extractor.Media{Title: "Song: Live", Path: path}, nil
}

type fakeUpdater struct {
	err      error
	calls    int
	deadline time.Duration
}

func (f *fakeUpdater) Update(ctx context.Context) error {
	f.calls++
	if d, ok := ctx.Deadline(); ok {
		f.deadline = time.Until(d)
	}
	return f.err
}

type fakeTranscoder struct {
	missing bool
	err     error
	calls   int
}

func (f *fakeTranscoder) Available() error {
	if f.missing {
		return transcode.ErrTranscoderMissing
	}
	return nil
}

func (f *fakeTranscoder) Transcode(ctx context.Context, src, dst string, req *model.DownloadRequest) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dst, []byte("RIFF"), 0644)
}

type fakeRecorder struct {
	records []model.Classification
	success []bool
}

func (f *fakeRecorder) Record(success bool, class model.Classification) error {
	f.success = append(f.success, success)
	f.records = append(f.records, class)
	return nil
}

// sleepRecorder records requested waits without sleeping
type sleepRecorder struct {
	waits []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

var (
	errForbidden = &extractor.DownloadError{Kind: extractor.ErrAccessForbidden, URL: "u", Detail: "HTTP Error 403: Forbidden"}
	errGeneric   = &extractor.DownloadError{Kind: extractor.ErrDownloadFailed, URL: "u", Detail: "Video unavailable"}
	errWeird     = errors.New("weird")
)
