package maintenance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ytget/ytwav/internal/extractor"
	"github.com/ytget/ytwav/internal/transcode"
)

type fakeYtDLP struct {
	version    string
	versionErr error
	updateErr  error
	updates    int
	titles     map[string]string
}

func (f *fakeYtDLP) Version(ctx context.Context) (string, error) {
	return f.version, f.versionErr
}

func (f *fakeYtDLP) Update(ctx context.Context) error {
	f.updates++
	return f.updateErr
}

func (f *fakeYtDLP) Info(ctx context.Context, url string) (*extractor.VideoInfo, error) {
	title, ok := f.titles[url]
	if !ok {
		return nil, errors.New("video unavailable")
	}
	return &extractor.VideoInfo{Title: title}, nil
}

type fakeFFmpeg struct {
	version string
	err     error
}

func (f *fakeFFmpeg) Version(ctx context.Context) (string, error) {
	return f.version, f.err
}

type fakeReleases struct {
	latest string
	err    error
}

func (f *fakeReleases) Latest(ctx context.Context) (string, error) {
	return f.latest, f.err
}

func allTitles() map[string]string {
	return map[string]string{
		DefaultTestURLs[0]: "Never Gonna Give You Up",
		DefaultTestURLs[1]: "PSY - 강남스타일",
	}
}

func newTestService(t *testing.T, yt *fakeYtDLP, ff *fakeFFmpeg, rel *fakeReleases) *Service {
	t.Helper()
	return NewService(yt, ff, rel, filepath.Join(t.TempDir(), "maintenance_status.json"), nil)
}

func TestCheckVersion(t *testing.T) {
	s := newTestService(t, &fakeYtDLP{version: "2025.01.01"}, &fakeFFmpeg{}, &fakeReleases{latest: "2025.02.01"})

	info, err := s.CheckVersion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.NeedsUpdate || info.Current != "2025.01.01" || info.Latest != "2025.02.01" {
		t.Errorf("unexpected version info: %+v", info)
	}

	s.releases = &fakeReleases{err: errors.New("offline")}
	if _, err := s.CheckVersion(context.Background()); err == nil {
		t.Error("expected error when the release lookup fails")
	}
}

func TestCheckFFmpeg(t *testing.T) {
	tests := []struct {
		name string
		ff   *fakeFFmpeg
		want string
	}{
		{"ok", &fakeFFmpeg{version: "ffmpeg version 6.1"}, StatusOK},
		{"missing", &fakeFFmpeg{err: transcode.ErrTranscoderMissing}, StatusNotFound},
		{"broken", &fakeFFmpeg{err: errors.New("exit status 1")}, StatusError},
		{"silent", &fakeFFmpeg{}, StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, &fakeYtDLP{}, tt.ff, &fakeReleases{})
			if got := s.CheckFFmpeg(context.Background()); got.Status != tt.want {
				t.Errorf("expected %s, got %+v", tt.want, got)
			}
		})
	}
}

func TestTestDownloadCapability(t *testing.T) {
	s := newTestService(t, &fakeYtDLP{titles: allTitles()}, &fakeFFmpeg{}, &fakeReleases{})

	res := s.TestDownloadCapability(context.Background())
	if res.Status != StatusOK || res.SuccessCount != 2 || res.SuccessRate != 100 {
		t.Errorf("unexpected result: %+v", res)
	}

	// One of two passing is 50%, below the pass mark
	s.ytdlp = &fakeYtDLP{titles: map[string]string{DefaultTestURLs[0]: "x"}}
	res = s.TestDownloadCapability(context.Background())
	if res.Status != StatusProblem || res.SuccessRate != 50 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestRun(t *testing.T) {
	yt := &fakeYtDLP{version: "2025.01.01", titles: allTitles()}
	s := newTestService(t, yt, &fakeFFmpeg{version: "ffmpeg version 6.1"}, &fakeReleases{latest: "2025.02.01"})

	overall := s.Run(context.Background(), true)
	if overall != OverallOK || ExitCode(overall) != 0 {
		t.Errorf("expected OK, got %s", overall)
	}
	if yt.updates != 1 {
		t.Errorf("expected one update, got %d", yt.updates)
	}

	status, err := s.LoadStatus()
	if err != nil || status == nil {
		t.Fatalf("expected saved status, got %v", err)
	}
	if status.Overall != OverallOK || status.Checks.YtdlpUpdate == nil || !status.Checks.YtdlpUpdate.Success {
		t.Errorf("unexpected saved status: %+v", status)
	}
}

func TestRun_NoUpdate(t *testing.T) {
	yt := &fakeYtDLP{version: "2025.01.01", titles: allTitles()}
	s := newTestService(t, yt, &fakeFFmpeg{err: transcode.ErrTranscoderMissing}, &fakeReleases{latest: "2025.02.01"})

	overall := s.Run(context.Background(), false)
	if overall != OverallFFmpegProblem || ExitCode(overall) != 1 {
		t.Errorf("expected FFMPEG_PROBLEM, got %s", overall)
	}
	if yt.updates != 0 {
		t.Error("update should be skipped")
	}
}

func TestOverallStatus(t *testing.T) {
	ok := FFmpegStatus{Status: StatusOK}
	bad := FFmpegStatus{Status: StatusNotFound}
	pass := DownloadTest{Status: StatusOK}
	fail := DownloadTest{Status: StatusProblem}

	if got := OverallStatus(Checks{FFmpeg: ok, DownloadTest: pass}); got != OverallOK {
		t.Errorf("got %s", got)
	}
	if got := OverallStatus(Checks{FFmpeg: ok, DownloadTest: fail}); got != OverallDownloadProblem {
		t.Errorf("got %s", got)
	}
	if got := OverallStatus(Checks{FFmpeg: bad, DownloadTest: fail}); got != OverallFFmpegProblem {
		t.Errorf("got %s", got)
	}
}

func TestLoadStatus_Missing(t *testing.T) {
	s := newTestService(t, &fakeYtDLP{}, &fakeFFmpeg{}, &fakeReleases{})
	status, err := s.LoadStatus()
	if err != nil || status != nil {
		t.Errorf("expected nil status, got %+v, %v", status, err)
	}
}

func TestGitHubReleases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a user agent")
		}
		w.Write([]byte(`{"tag_name":"2025.02.01","name":"yt-dlp 2025.02.01"}`))
	}))
	defer server.Close()

	latest, err := NewGitHubReleases(server.URL).Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest != "2025.02.01" {
		t.Errorf("expected 2025.02.01, got %s", latest)
	}
}

func TestGitHubReleases_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := NewGitHubReleases(server.URL).Latest(context.Background()); err == nil {
		t.Error("expected error for non-200 status")
	}
}
