package ui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/ytwav/internal/model"
)

type fakeDownloader struct {
	mu       sync.Mutex
	requests []*model.DownloadRequest
	outcome  model.DownloadOutcome
}

func (f *fakeDownloader) Download(ctx context.Context, req *model.DownloadRequest) model.DownloadOutcome {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	out := f.outcome
	out.RequestID = req.ID
	out.URL = req.URL
	return out
}

func (f *fakeDownloader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeChecker struct {
	err error
}

func (f fakeChecker) Available() error { return f.err }

func newTestUI(t *testing.T, dl *fakeDownloader, checker fakeChecker) *RootUI {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(func() { app.Quit() })
	w := app.NewWindow("")
	return NewRootUI(context.Background(), app, w, dl, checker)
}

func waitFinished(t *testing.T, ui *RootUI) model.DownloadOutcome {
	t.Helper()
	done := make(chan model.DownloadOutcome, 1)
	ui.onFinished = func(out model.DownloadOutcome) { done <- out }
	ui.onDownloadClick()

	select {
	case out := <-done:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("download did not finish")
	}
	return model.DownloadOutcome{}
}

func TestNewRootUI(t *testing.T) {
	ui := newTestUI(t, &fakeDownloader{}, fakeChecker{})

	if ui.window.Title() != ui.localization.GetText(KeyAppTitle) {
		t.Errorf("unexpected title %q", ui.window.Title())
	}
	if !ui.window.FixedSize() {
		t.Error("window should not be resizable")
	}
	if ui.downloadBtn.Disabled() {
		t.Error("button should start enabled")
	}
}

func TestOnDownloadClick_EmptyAndInvalid(t *testing.T) {
	dl := &fakeDownloader{}
	ui := newTestUI(t, dl, fakeChecker{})

	ui.urlEntry.SetText("   ")
	ui.onDownloadClick()

	ui.urlEntry.SetText("https://vimeo.com/1")
	ui.onDownloadClick()

	if dl.count() != 0 {
		t.Errorf("expected no downloads, got %d", dl.count())
	}
	if ui.busy || ui.downloadBtn.Disabled() {
		t.Error("form should stay idle")
	}
}

func TestOnDownloadClick_Success(t *testing.T) {
	dir := t.TempDir()
	dl := &fakeDownloader{outcome: model.DownloadOutcome{
		Success:    true,
		OutputPath: filepath.Join(dir, "Song.wav"),
	}}
	ui := newTestUI(t, dl, fakeChecker{})
	ui.settings.SetOutputDirectory(dir)
	ui.settings.SetChannels(1)

	ui.urlEntry.SetText(" https://youtu.be/abc ")
	out := waitFinished(t, ui)

	if !out.Success {
		t.Fatal("expected success outcome")
	}
	if dl.count() != 1 {
		t.Fatalf("expected one download, got %d", dl.count())
	}
	req := dl.requests[0]
	if req.URL != "https://youtu.be/abc" || req.OutputDir != dir || req.Channels != 1 {
		t.Errorf("request does not reflect the form and settings: %+v", req)
	}
	if ui.busy || ui.downloadBtn.Disabled() {
		t.Error("button should be re-enabled")
	}
	if ui.urlEntry.Text != "" {
		t.Error("entry should be cleared after success")
	}
}

func TestOnDownloadClick_Failure(t *testing.T) {
	dl := &fakeDownloader{outcome: model.DownloadOutcome{
		Classification: model.ClassDownloadFailed,
		Err:            errors.New("nope"),
	}}
	ui := newTestUI(t, dl, fakeChecker{})

	ui.urlEntry.SetText("https://www.youtube.com/watch?v=x")
	out := waitFinished(t, ui)

	if out.Success {
		t.Fatal("expected failure outcome")
	}
	if ui.urlEntry.Text == "" {
		t.Error("entry should be kept after a failure")
	}
	if ui.downloadBtn.Disabled() {
		t.Error("button should be re-enabled")
	}
}

func TestCheckDependencies(t *testing.T) {
	ok := newTestUI(t, &fakeDownloader{}, fakeChecker{})
	if !ok.CheckDependencies() {
		t.Error("expected dependencies to be satisfied")
	}

	missing := newTestUI(t, &fakeDownloader{}, fakeChecker{err: errors.New("ffmpeg not found")})
	if missing.CheckDependencies() {
		t.Error("expected missing ffmpeg to be reported")
	}
}

func TestSettingsDialog_Save(t *testing.T) {
	ui := newTestUI(t, &fakeDownloader{}, fakeChecker{})

	saved := false
	sd := NewSettingsDialog(ui.settings, ui.localization, ui.window, func() { saved = true })
	sd.loadCurrentSettings()

	sd.outputDirEntry.SetText("/music/wav")
	sd.sampleRateSelect.SetSelected("44100")
	sd.bitDepthSelect.SetSelected("24")
	sd.keepSourceCheck.SetChecked(true)
	sd.languageSelect.SetSelected(LanguagePolish)
	sd.save()

	if !saved {
		t.Error("expected saved callback")
	}
	s := ui.settings
	if s.GetOutputDirectory() != "/music/wav" || s.GetSampleRate() != 44100 || s.GetBitDepth() != 24 || !s.GetKeepSource() {
		t.Errorf("settings not saved: dir=%s rate=%d bit=%d keep=%v",
			s.GetOutputDirectory(), s.GetSampleRate(), s.GetBitDepth(), s.GetKeepSource())
	}
	if s.GetLanguage() != LanguagePolish {
		t.Errorf("expected language pl, got %s", s.GetLanguage())
	}
}
