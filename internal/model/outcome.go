package model

import "time"

// DownloadOutcome is the result of one DownloadRequest
type DownloadOutcome struct {
	RequestID      string
	URL            string
	Success        bool
	Classification Classification
	Attempts       int  // extraction calls made, including the post-update one
	Updated        bool // the extraction library was updated during this request
	OutputPath     string
	Title          string
	Err            error // last error, nil on success
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Duration returns how long the request took
func (o *DownloadOutcome) Duration() time.Duration {
	if o.FinishedAt.IsZero() || o.StartedAt.IsZero() {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}

// ErrorString returns the last error message or an empty string
func (o *DownloadOutcome) ErrorString() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
