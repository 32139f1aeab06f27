package platform

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/areavii/av-downloader/internal/model"
)

// Timeout constants
const (
	DefaultFetchTimeout = 90 * time.Second
)

// Fetch errors
var (
	ErrEmptyURL      = errors.New("empty URL")
	ErrLiveStream    = errors.New("live streams cannot be downloaded")
	ErrEmptyPlaylist = errors.New("playlist contains no valid videos")
)

// FetchResult is what the downloader tab shows after a fetch
type FetchResult struct {
	Preview       *model.VideoInfo   // fully resolved info shown in the info panel
	Items         []*model.VideoInfo // selectable items; flat entries for playlists
	IsPlaylist    bool
	PlaylistTitle string
}

// InfoService resolves URLs into video metadata
type InfoService struct {
	timeout   time.Duration
	extractor Extractor
	playlists PlaylistEnumerator
}

// NewInfoService creates an info service backed by yt-dlp and the native playlist client
func NewInfoService() *InfoService {
	return &InfoService{
		timeout:   DefaultFetchTimeout,
		extractor: NewYTDLPExtractor(),
		playlists: NewPlaylistParserService(),
	}
}

// SetTimeout sets the timeout for a whole fetch
func (s *InfoService) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Fetch extracts metadata for url. Playlists are listed flat and only their
// first downloadable entry is resolved for the preview.
func (s *InfoService) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrEmptyURL
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	info := s.enumeratePlaylist(ctx, url)
	if info == nil {
		var err error
		info, err = s.extractor.Extract(ctx, url, true)
		if err != nil {
			return nil, fmt.Errorf("fetch info: %w", err)
		}
	}

	if info.IsPlaylist() {
		entries := info.DownloadableEntries()
		if len(entries) == 0 {
			return nil, ErrEmptyPlaylist
		}

		preview, err := s.Resolve(ctx, entries[0])
		if err != nil {
			return nil, err
		}
		entries[0] = preview

		log.Printf("Playlist %q fetched with %d entries", info.DisplayTitle(), len(entries))
		return &FetchResult{
			Preview:       preview,
			Items:         entries,
			IsPlaylist:    true,
			PlaylistTitle: info.DisplayTitle(),
		}, nil
	}

	if info.IsLive {
		return nil, ErrLiveStream
	}

	return &FetchResult{
		Preview: info,
		Items:   []*model.VideoInfo{info},
	}, nil
}

// Resolve returns full info for a flat entry, or the entry itself when it already has formats
func (s *InfoService) Resolve(ctx context.Context, entry *model.VideoInfo) (*model.VideoInfo, error) {
	if entry == nil {
		return nil, fmt.Errorf("resolve entry: nil info")
	}
	if !entry.NeedsResolve() {
		return entry, nil
	}

	url := entry.SourceURL()
	if url == "" {
		return nil, fmt.Errorf("resolve entry %q: no URL", entry.DisplayTitle())
	}

	full, err := s.extractor.Extract(ctx, url, false)
	if err != nil {
		return nil, fmt.Errorf("resolve entry: %w", err)
	}
	if full.IsLive {
		return nil, ErrLiveStream
	}
	if full.Title == "" {
		full.Title = entry.Title
	}
	return full, nil
}

// enumeratePlaylist tries the native playlist client for list= URLs, nil when it does not apply or fails
func (s *InfoService) enumeratePlaylist(ctx context.Context, url string) *model.VideoInfo {
	if s.playlists == nil || !IsPlaylistURL(url) {
		return nil
	}

	info, err := s.playlists.Enumerate(ctx, url)
	if err != nil {
		log.Printf("Native playlist enumeration failed, falling back to yt-dlp: %v", err)
		return nil
	}
	if len(info.Entries) == 0 {
		return nil
	}
	return info
}
