package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Codec value yt-dlp uses when a stream lacks video or audio
const CodecNone = "none"

// Info types reported in the _type field
const (
	InfoTypeVideo    = "video"
	InfoTypePlaylist = "playlist"
	InfoTypeURL      = "url"
)

// Fallback strings shown for missing metadata
const (
	NotAvailable = "N/A"
	UntitledItem = "Untitled"
)

// Format is a single downloadable stream as listed in yt-dlp's formats array
type Format struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Height         int     `json:"height"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	TBR            float64 `json:"tbr"`
	ABR            float64 `json:"abr"`
	FileSize       int64   `json:"filesize"`
	FileSizeApprox float64 `json:"filesize_approx"`
}

// HasVideo reports whether the stream carries video
func (f *Format) HasVideo() bool {
	return f.VCodec != CodecNone
}

// HasAudio reports whether the stream carries audio
func (f *Format) HasAudio() bool {
	return f.ACodec != CodecNone
}

// IsAudioOnly reports whether the stream is audio without video
func (f *Format) IsAudioOnly() bool {
	return f.HasAudio() && !f.HasVideo()
}

// Size returns the exact size when known, otherwise the approximation, otherwise 0
func (f *Format) Size() int64 {
	if f.FileSize > 0 {
		return f.FileSize
	}
	if f.FileSizeApprox > 0 {
		return int64(f.FileSizeApprox)
	}
	return 0
}

// VideoInfo is the subset of yt-dlp's info dictionary the app works with.
// Playlists carry their items in Entries; flat entries have no Formats.
type VideoInfo struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Type       string       `json:"_type,omitempty"`
	WebpageURL string       `json:"webpage_url,omitempty"`
	URL        string       `json:"url,omitempty"`
	Duration   float64      `json:"duration,omitempty"`
	Thumbnail  string       `json:"thumbnail,omitempty"`
	Uploader   string       `json:"uploader,omitempty"`
	IsLive     bool         `json:"is_live,omitempty"`
	Formats    []*Format    `json:"formats,omitempty"`
	Entries    []*VideoInfo `json:"entries,omitempty"`
}

// ParseVideoInfo decodes the JSON document printed by yt-dlp's --dump-single-json
func ParseVideoInfo(data []byte) (*VideoInfo, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("empty info document")
	}

	var info VideoInfo
	if err := json.Unmarshal([]byte(trimmed), &info); err != nil {
		return nil, fmt.Errorf("failed to decode info: %w", err)
	}
	return &info, nil
}

// IsPlaylist reports whether the info lists any entries. A playlist result
// without entries is handled as a single video.
func (v *VideoInfo) IsPlaylist() bool {
	return len(v.Entries) > 0
}

// DownloadableEntries returns the non-nil entries that are not live streams
func (v *VideoInfo) DownloadableEntries() []*VideoInfo {
	entries := make([]*VideoInfo, 0, len(v.Entries))
	for _, entry := range v.Entries {
		if entry == nil || entry.IsLive {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// SourceURL returns the page URL, falling back to the direct URL
func (v *VideoInfo) SourceURL() string {
	if v.WebpageURL != "" {
		return v.WebpageURL
	}
	return v.URL
}

// DisplayTitle returns the title or a placeholder
func (v *VideoInfo) DisplayTitle() string {
	title := strings.TrimSpace(v.Title)
	if title == "" {
		return UntitledItem
	}
	return title
}

// NeedsResolve reports whether the info is a flat entry without stream data
func (v *VideoInfo) NeedsResolve() bool {
	return len(v.Formats) == 0
}

// Clone returns a copy that owns its formats and entries slices
func (v *VideoInfo) Clone() *VideoInfo {
	if v == nil {
		return nil
	}
	c := *v
	if v.Formats != nil {
		c.Formats = append([]*Format(nil), v.Formats...)
	}
	if v.Entries != nil {
		c.Entries = append([]*VideoInfo(nil), v.Entries...)
	}
	return &c
}
