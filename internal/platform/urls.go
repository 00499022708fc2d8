package platform

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
)

// CommentPrefix marks a line in a URL list file that is ignored
const CommentPrefix = "#"

// YouTubeDomains are the host fragments accepted as YouTube links
var YouTubeDomains = []string{"youtube.com", "youtu.be", "m.youtube.com", "www.youtube.com"}

// IsValidYouTubeURL reports whether url mentions one of the YouTube domains
func IsValidYouTubeURL(url string) bool {
	for _, domain := range YouTubeDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	return false
}

// LoadURLsFromFile reads one URL per line from path. Blank lines and lines
// starting with '#' are skipped; invalid URLs are logged with their line
// number and dropped. A file that cannot be read yields no URLs.
func LoadURLsFromFile(path string, log *slog.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error("url list file not found", "file", path)
		} else {
			log.Error("failed to open url list file", "file", path, "error", err)
		}
		return nil
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		if !IsValidYouTubeURL(line) {
			log.Warn("invalid YouTube URL", "file", path, "line", lineNum, "url", line)
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		log.Error("failed to read url list file", "file", path, "error", err)
	}

	log.Info("loaded urls from file", "file", path, "count", len(urls))
	return urls
}

// LoadAllURLs merges the single positional URL and the URLs of the list
// file, in that order. Either source may be empty.
func LoadAllURLs(single, listFile string, log *slog.Logger) []string {
	var urls []string

	single = strings.TrimSpace(single)
	if single != "" {
		if IsValidYouTubeURL(single) {
			urls = append(urls, single)
		} else {
			log.Error("invalid YouTube URL", "url", single)
		}
	}

	if listFile != "" {
		urls = append(urls, LoadURLsFromFile(listFile, log)...)
	}

	return urls
}
