package model

import "time"

// RetryProfile is the pacing and client identity used for one download
// attempt.
type RetryProfile struct {
	Sleep          int    // seconds between yt-dlp requests
	IdentitySuffix string // appended to the base user agent
}

// SleepDuration returns the profile's nominal sleep interval
func (p RetryProfile) SleepDuration() time.Duration {
	return time.Duration(p.Sleep) * time.Second
}

// ForbiddenBackoff returns the wait imposed after a 403 response: twice the
// nominal interval.
func (p RetryProfile) ForbiddenBackoff() time.Duration {
	return 2 * p.SleepDuration()
}

// retryProfiles is ordered by strictly increasing sleep
var retryProfiles = [...]RetryProfile{
	{Sleep: 2, IdentitySuffix: ""},
	{Sleep: 5, IdentitySuffix: " Edg/120.0.0.0"},
	{Sleep: 8, IdentitySuffix: " Firefox/120.0"},
	{Sleep: 12, IdentitySuffix: " Safari/537.36"},
	{Sleep: 15, IdentitySuffix: " Chrome/120.0.0.0"},
}

// RetryProfiles returns the fixed profile sequence. The returned slice is a
// copy; callers cannot alter the table.
func RetryProfiles() []RetryProfile {
	out := make([]RetryProfile, len(retryProfiles))
	copy(out, retryProfiles[:])
	return out
}
