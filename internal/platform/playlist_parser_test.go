package platform

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/areavii/av-downloader/internal/model"
)

func TestNewPlaylistParserService(t *testing.T) {
	service := NewPlaylistParserService()

	if service.timeout != DefaultPlaylistParseTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultPlaylistParseTimeout, service.timeout)
	}

	service.SetTimeout(time.Minute)
	if service.timeout != time.Minute {
		t.Errorf("expected timeout %v, got %v", time.Minute, service.timeout)
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{"watch url with radio", "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1", "PLAYLIST_ID", false},
		{"playlist page", "https://www.youtube.com/playlist?list=PLxyz", "PLxyz", false},
		{"no list parameter", "https://www.youtube.com/watch?v=VIDEO_ID", "", true},
		{"empty list parameter", "https://www.youtube.com/playlist?list=&x=1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractPlaylistID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ExtractPlaylistID() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestPlaylistParserService_Enumerate(t *testing.T) {
	var gotID string
	service := &PlaylistParserService{
		timeout: time.Second,
		fetch: func(ctx context.Context, playlistID string) ([]playlistItem, error) {
			gotID = playlistID
			return []playlistItem{
				{VideoID: "v1", Title: "Lecture Series - Part 1"},
				{VideoID: "", Title: "broken"},
				{VideoID: "v2", Title: "Lecture Series - Part 2"},
			}, nil
		},
	}

	info, err := service.Enumerate(context.Background(), "https://www.youtube.com/playlist?list=PL42")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotID != "PL42" {
		t.Errorf("Expected playlist ID PL42, got %s", gotID)
	}
	if info.Type != model.InfoTypePlaylist || !info.IsPlaylist() {
		t.Error("Expected playlist info")
	}
	if len(info.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(info.Entries))
	}
	if info.Entries[1].URL != "https://www.youtube.com/watch?v=v2" {
		t.Errorf("Unexpected entry URL %s", info.Entries[1].URL)
	}
	if !info.Entries[0].NeedsResolve() {
		t.Error("Enumerated entries should be flat")
	}
	if info.Title != "Lecture Series - Part Playlist" {
		t.Errorf("Unexpected title %q", info.Title)
	}
}

func TestPlaylistParserService_EnumerateErrors(t *testing.T) {
	service := &PlaylistParserService{
		fetch: func(ctx context.Context, playlistID string) ([]playlistItem, error) {
			return nil, errors.New("quota")
		},
	}

	if _, err := service.Enumerate(context.Background(), "https://www.youtube.com/watch?v=x"); err == nil {
		t.Error("Expected error for URL without playlist")
	}

	_, err := service.Enumerate(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	if err == nil || !strings.Contains(err.Error(), "failed to get playlist items") {
		t.Errorf("Expected wrapped fetch error, got %v", err)
	}
}

func TestPlaylistTitle(t *testing.T) {
	long := strings.Repeat("x", MaxTitleLength+5)

	tests := []struct {
		name     string
		entries  []*model.VideoInfo
		expected string
	}{
		{"no entries", nil, DefaultPlaylistTitle},
		{"single entry", []*model.VideoInfo{{Title: "Song"}}, "Song Playlist"},
		{"short common prefix", []*model.VideoInfo{{Title: "Song A"}, {Title: "Song B"}}, "Song A Playlist"},
		{"truncated", []*model.VideoInfo{{Title: long}}, strings.Repeat("x", MaxTitleLength) + TitleTruncateSuffix + PlaylistSuffix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := playlistTitle(tt.entries); got != tt.expected {
				t.Errorf("playlistTitle() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
