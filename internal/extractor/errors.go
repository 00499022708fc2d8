package extractor

import (
	"errors"
	"strings"
)

var (
	// ErrAccessForbidden means the site answered HTTP 403
	ErrAccessForbidden = errors.New("access forbidden")

	// ErrDownloadFailed covers every other extraction failure
	ErrDownloadFailed = errors.New("download failed")
)

// Markers in yt-dlp output that identify a 403 response
var forbiddenMarkers = []string{
	"http error 403",
	"403 forbidden",
	"403: forbidden",
	"forbidden",
}

// DownloadError is returned by the client for a failed yt-dlp run
type DownloadError struct {
	// Kind is ErrAccessForbidden or ErrDownloadFailed
	Kind   error
	URL    string
	Detail string
	Err    error
}

func (e *DownloadError) Error() string {
	msg := e.Kind.Error() + ": " + e.URL
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is matches the error's kind
func (e *DownloadError) Is(target error) bool {
	return target == e.Kind
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Classify returns ErrAccessForbidden when text carries a 403 marker and
// ErrDownloadFailed otherwise
func Classify(text string) error {
	lower := strings.ToLower(text)
	for _, m := range forbiddenMarkers {
		if strings.Contains(lower, m) {
			return ErrAccessForbidden
		}
	}
	return ErrDownloadFailed
}

// newDownloadError builds a classified error from a failed run. stderr
// may be empty when yt-dlp never started.
func newDownloadError(url string, err error, stderr string) *DownloadError {
	detail := lastLine(stderr)
	if detail == "" && err != nil {
		detail = err.Error()
	}

	text := stderr
	if err != nil {
		text = err.Error() + "\n" + stderr
	}

	return &DownloadError{
		Kind:   Classify(text),
		URL:    url,
		Detail: detail,
		Err:    err,
	}
}

// lastLine returns the last non-empty line of s, which is where yt-dlp
// prints its ERROR message
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
