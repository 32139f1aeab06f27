package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	ytlib "github.com/ytget/ytdlp/v2"

	"github.com/areavii/av-downloader/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 30 * time.Second
)

// URL parameters
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	DefaultPlaylistTitle = "Untitled Playlist"
	PlaylistSuffix       = " Playlist"
	MinPrefixLength      = 10
	MaxTitleLength       = 50
	TitleTruncateSuffix  = "..."
)

// PlaylistEnumerator lists the entries of a playlist URL
type PlaylistEnumerator interface {
	Enumerate(ctx context.Context, url string) (*model.VideoInfo, error)
}

// PlaylistParserService enumerates YouTube playlists through the native ytdlp/v2 client
type PlaylistParserService struct {
	timeout time.Duration
	fetch   func(ctx context.Context, playlistID string) ([]playlistItem, error)
}

type playlistItem struct {
	VideoID string
	Title   string
}

// NewPlaylistParserService creates a new playlist parser service
func NewPlaylistParserService() *PlaylistParserService {
	return &PlaylistParserService{
		timeout: DefaultPlaylistParseTimeout,
		fetch:   fetchPlaylistItems,
	}
}

// SetTimeout sets the timeout for playlist parsing
func (p *PlaylistParserService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Enumerate returns a flat playlist info whose entries point at the watch pages
func (p *PlaylistParserService) Enumerate(ctx context.Context, url string) (*model.VideoInfo, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	items, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	entries := make([]*model.VideoInfo, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, &model.VideoInfo{
			ID:    it.VideoID,
			Title: it.Title,
			Type:  model.InfoTypeURL,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}

	return &model.VideoInfo{
		ID:         playlistID,
		Title:      playlistTitle(entries),
		Type:       model.InfoTypePlaylist,
		WebpageURL: url,
		Entries:    entries,
	}, nil
}

func fetchPlaylistItems(ctx context.Context, playlistID string) ([]playlistItem, error) {
	items, err := ytlib.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	out := make([]playlistItem, 0, len(items))
	for _, it := range items {
		out = append(out, playlistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}

// IsPlaylistURL checks if the URL carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistURLParam)
}

// ExtractPlaylistID extracts the playlist ID from a YouTube URL.
// Supported forms:
// - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
// - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(url string) (string, error) {
	if !IsPlaylistURL(url) {
		return "", fmt.Errorf("URL does not contain playlist parameter")
	}

	parts := strings.SplitN(url, PlaylistURLParam, 2)
	playlistID := parts[1]
	if idx := strings.Index(playlistID, PlaylistParamSeparator); idx >= 0 {
		playlistID = playlistID[:idx]
	}

	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID")
	}
	return playlistID, nil
}

// playlistTitle derives a name from the shared prefix of the first two titles
func playlistTitle(entries []*model.VideoInfo) string {
	if len(entries) == 0 {
		return DefaultPlaylistTitle
	}
	if len(entries) > 1 {
		prefix := strings.TrimSpace(commonPrefix(entries[0].Title, entries[1].Title))
		if len(prefix) > MinPrefixLength {
			return prefix + PlaylistSuffix
		}
	}

	first := entries[0].DisplayTitle()
	if len([]rune(first)) > MaxTitleLength {
		first = string([]rune(first)[:MaxTitleLength]) + TitleTruncateSuffix
	}
	return first + PlaylistSuffix
}

func commonPrefix(s1, s2 string) string {
	r1, r2 := []rune(s1), []rune(s2)
	n := min(len(r1), len(r2))
	for i := 0; i < n; i++ {
		if r1[i] != r2[i] {
			return string(r1[:i])
		}
	}
	return string(r1[:n])
}
