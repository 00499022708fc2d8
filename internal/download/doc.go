// Package download implements the bounded retry pipeline that turns a
// video URL into a WAV file. Each attempt fetches the best audio stream
// through yt-dlp (internal/extractor) and converts it with ffmpeg
// (internal/transcode). Attempts walk a fixed list of retry profiles;
// when the list is exhausted the service updates yt-dlp once and makes
// one final attempt.
package download
