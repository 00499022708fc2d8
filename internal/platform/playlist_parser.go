package platform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/ytwav/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// playlistItemsFunc fetches the videos of a playlist by its ID
type playlistItemsFunc func(ctx context.Context, playlistID string) ([]*model.PlaylistVideo, error)

// PlaylistParserService expands YouTube playlists into video URLs
type PlaylistParserService struct {
	timeout  time.Duration
	getItems playlistItemsFunc
}

// NewPlaylistParserService creates a new playlist parser service
func NewPlaylistParserService() *PlaylistParserService {
	return &PlaylistParserService{
		timeout:  DefaultPlaylistParseTimeout,
		getItems: fetchPlaylistItems,
	}
}

// SetTimeout sets the timeout for parsing operations
func (p *PlaylistParserService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL reports whether url carries a playlist ID
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistURLParam)
}

// ParsePlaylist resolves a playlist URL into its videos
func (p *PlaylistParserService) ParsePlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	if !IsPlaylistURL(url) {
		return nil, fmt.Errorf("invalid playlist URL: %s", url)
	}

	playlist := model.NewPlaylist(url)

	playlistID := extractPlaylistID(url)
	if playlistID == "" {
		err := fmt.Errorf("could not extract playlist ID from URL: %s", url)
		playlist.Error = err.Error()
		playlist.UpdateStatus(model.PlaylistStatusError)
		return playlist, err
	}
	playlist.ID = playlistID

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	videos, err := p.getItems(ctx, playlistID)
	if err != nil {
		err = fmt.Errorf("failed to get playlist items: %w", err)
		playlist.Error = err.Error()
		playlist.UpdateStatus(model.PlaylistStatusError)
		return playlist, err
	}

	for _, video := range videos {
		playlist.AddVideo(video)
	}
	playlist.UpdateStatus(model.PlaylistStatusReady)

	return playlist, nil
}

// ExpandPlaylists replaces every playlist URL in urls with the URLs of its
// videos. A playlist that cannot be parsed is logged and skipped; other
// URLs pass through unchanged and keep their order.
func (p *PlaylistParserService) ExpandPlaylists(ctx context.Context, urls []string, log *slog.Logger) []string {
	out := make([]string, 0, len(urls))
	for _, url := range urls {
		if !IsPlaylistURL(url) {
			out = append(out, url)
			continue
		}

		playlist, err := p.ParsePlaylist(ctx, url)
		if err != nil {
			log.Warn("skipping playlist", "url", url, "error", err)
			continue
		}

		videoURLs := playlist.URLs()
		log.Info("expanded playlist", "url", url, "playlist", playlist.ID, "videos", len(videoURLs))
		out = append(out, videoURLs...)
	}
	return out
}

// extractPlaylistID extracts the playlist ID from various URL formats
func extractPlaylistID(url string) string {
	parts := strings.SplitN(url, PlaylistURLParam, 2)
	if len(parts) < 2 {
		return ""
	}
	id := parts[1]
	if idx := strings.Index(id, PlaylistParamSeparator); idx >= 0 {
		id = id[:idx]
	}
	return strings.TrimSpace(id)
}

// fetchPlaylistItems lists playlist videos through the ytdlp client
func fetchPlaylistItems(ctx context.Context, playlistID string) ([]*model.PlaylistVideo, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	videos := make([]*model.PlaylistVideo, 0, len(items))
	for _, it := range items {
		videos = append(videos, &model.PlaylistVideo{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return videos, nil
}
