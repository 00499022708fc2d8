package model

// Classification labels a failed download for logs and metrics
type Classification string

const (
	// ClassNone means the download succeeded
	ClassNone Classification = ""

	// ClassAccessForbidden means the site answered HTTP 403
	ClassAccessForbidden Classification = "access-forbidden"

	// ClassDownloadFailed is any other extraction or transcode failure
	ClassDownloadFailed Classification = "download-failed"

	// ClassTranscoderMissing means ffmpeg is not reachable
	ClassTranscoderMissing Classification = "transcoder-missing"

	// ClassCanceled means the caller's context ended the request
	ClassCanceled Classification = "canceled"
)

// String returns the string representation of Classification
func (c Classification) String() string {
	return string(c)
}

// IsRetryable returns false only for failures another attempt cannot fix
func (c Classification) IsRetryable() bool {
	return c != ClassTranscoderMissing && c != ClassCanceled && c != ClassNone
}

// NeedsExtraBackoff returns true when the next attempt must wait longer
// than the profile's nominal interval
func (c Classification) NeedsExtraBackoff() bool {
	return c == ClassAccessForbidden
}
