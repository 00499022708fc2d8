package extractor

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"http 403", "ERROR: unable to download video data: HTTP Error 403: Forbidden", ErrAccessForbidden},
		{"lowercase", "forbidden by server", ErrAccessForbidden},
		{"404", "ERROR: HTTP Error 404: Not Found", ErrDownloadFailed},
		{"unavailable", "ERROR: [youtube] abc: Video unavailable", ErrDownloadFailed},
		{"empty", "", ErrDownloadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewDownloadError(t *testing.T) {
	cause := errors.New("exit status 1")
	stderr := "[youtube] abc: Downloading webpage\nERROR: unable to download video data: HTTP Error 403: Forbidden\n"

	err := newDownloadError("https://youtu.be/abc", cause, stderr)

	if !errors.Is(err, ErrAccessForbidden) {
		t.Errorf("expected access forbidden, got %v", err)
	}
	if errors.Is(err, ErrDownloadFailed) {
		t.Error("should not match download failed")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrapped")
	}
	if err.Detail != "ERROR: unable to download video data: HTTP Error 403: Forbidden" {
		t.Errorf("unexpected detail: %q", err.Detail)
	}

	var de *DownloadError
	if !errors.As(error(err), &de) || de.URL != "https://youtu.be/abc" {
		t.Errorf("expected DownloadError for URL, got %v", err)
	}
}

func TestNewDownloadError_NoStderr(t *testing.T) {
	err := newDownloadError("u", errors.New("executable not found"), "")

	if !errors.Is(err, ErrDownloadFailed) {
		t.Errorf("expected download failed, got %v", err)
	}
	if err.Error() != "download failed: u: executable not found" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestFirstJSONLine(t *testing.T) {
	out := "WARNING: something\n{\"id\":\"abc\",\"title\":\"T\"}\n"
	if got := firstJSONLine(out); got != `{"id":"abc","title":"T"}` {
		t.Errorf("unexpected line: %q", got)
	}
}
