package download

import (
	"fmt"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/model"
)

// Format selectors
const (
	AudioFormatSelector = "bestaudio/best"
	VideoFormatSelector = "bestvideo[height<=%d]+bestaudio/best"
	DefaultAudioQuality = "192"
)

// Options is the yt-dlp configuration for one queue item
type Options struct {
	Format         string
	OutputTemplate string
	ExtractAudio   bool
	AudioFormat    string
	AudioQuality   string
	MergeFormat    string
	EmbedThumbnail bool
	EmbedMetadata  bool
	RateLimit      string
}

// OptionsFor maps the item's quality and format onto yt-dlp options
func OptionsFor(item *model.QueueItem, settings config.Snapshot) Options {
	template := settings.FilenameTemplate
	if template == "" {
		template = config.DefaultFilenameTemplate
	}

	opts := Options{
		OutputTemplate: filepath.Join(settings.OutputPath, template),
		RateLimit:      settings.RateLimit,
	}

	if item.Format.IsAudio() {
		opts.Format = AudioFormatSelector
		opts.ExtractAudio = true
		opts.AudioFormat = item.Format.Ext()
		opts.AudioQuality = DefaultAudioQuality
		opts.EmbedThumbnail = true
		opts.EmbedMetadata = true
		return opts
	}

	opts.Format = fmt.Sprintf(VideoFormatSelector, item.Height())
	opts.MergeFormat = item.Format.Ext()
	return opts
}

// Command builds the go-ytdlp command for these options
func (o Options) Command() *ytdlp.Command {
	dl := ytdlp.New().
		Format(o.Format).
		Output(o.OutputTemplate).
		NoPlaylist().
		IgnoreErrors()

	if o.ExtractAudio {
		dl = dl.ExtractAudio().
			AudioFormat(o.AudioFormat).
			AudioQuality(o.AudioQuality)
	}
	if o.MergeFormat != "" {
		dl = dl.MergeOutputFormat(o.MergeFormat)
	}
	if o.EmbedThumbnail {
		dl = dl.EmbedThumbnail()
	}
	if o.EmbedMetadata {
		dl = dl.EmbedMetadata()
	}
	if o.RateLimit != "" {
		dl = dl.LimitRate(o.RateLimit)
	}
	return dl
}
