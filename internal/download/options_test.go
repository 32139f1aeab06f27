package download

import (
	"path/filepath"
	"testing"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/model"
)

func TestOptionsFor(t *testing.T) {
	settings := config.Snapshot{
		OutputPath:       "/videos",
		FilenameTemplate: "%(title)s.%(ext)s",
	}

	tests := []struct {
		name     string
		item     *model.QueueItem
		settings config.Snapshot
		expected Options
	}{
		{
			name:     "video mp4 at 1080p",
			item:     &model.QueueItem{Quality: "1080p", Format: model.FormatVideoMP4},
			settings: settings,
			expected: Options{
				Format:         "bestvideo[height<=1080]+bestaudio/best",
				OutputTemplate: filepath.Join("/videos", "%(title)s.%(ext)s"),
				MergeFormat:    "mp4",
			},
		},
		{
			name:     "video mkv falls back to 720",
			item:     &model.QueueItem{Quality: "best", Format: model.FormatVideoMKV},
			settings: settings,
			expected: Options{
				Format:         "bestvideo[height<=720]+bestaudio/best",
				OutputTemplate: filepath.Join("/videos", "%(title)s.%(ext)s"),
				MergeFormat:    "mkv",
			},
		},
		{
			name:     "audio mp3 with rate limit",
			item:     &model.QueueItem{Quality: model.QualityAudio, Format: model.FormatAudioMP3},
			settings: config.Snapshot{OutputPath: "/music", FilenameTemplate: "%(id)s.%(ext)s", RateLimit: "500K"},
			expected: Options{
				Format:         AudioFormatSelector,
				OutputTemplate: filepath.Join("/music", "%(id)s.%(ext)s"),
				ExtractAudio:   true,
				AudioFormat:    "mp3",
				AudioQuality:   "192",
				EmbedThumbnail: true,
				EmbedMetadata:  true,
				RateLimit:      "500K",
			},
		},
		{
			name:     "audio m4a with default template",
			item:     &model.QueueItem{Quality: model.QualityAudio, Format: model.FormatAudioM4A},
			settings: config.Snapshot{OutputPath: "/music"},
			expected: Options{
				Format:         AudioFormatSelector,
				OutputTemplate: filepath.Join("/music", config.DefaultFilenameTemplate),
				ExtractAudio:   true,
				AudioFormat:    "m4a",
				AudioQuality:   "192",
				EmbedThumbnail: true,
				EmbedMetadata:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OptionsFor(tt.item, tt.settings)
			if got != tt.expected {
				t.Errorf("OptionsFor() = %+v, expected %+v", got, tt.expected)
			}
			if got.Command() == nil {
				t.Error("Command() should build a yt-dlp command")
			}
		})
	}
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolValue(p *bool) bool {
	return p != nil && *p
}

func TestOptions_CommandFlags(t *testing.T) {
	t.Run("video", func(t *testing.T) {
		opts := OptionsFor(
			&model.QueueItem{Quality: "1080p", Format: model.FormatVideoMKV},
			config.Snapshot{OutputPath: "/videos", FilenameTemplate: "%(title)s.%(ext)s", RateLimit: "2M"},
		)
		flags := opts.Command().GetFlagConfig()

		if got := strValue(flags.VideoFormat.Format); got != "bestvideo[height<=1080]+bestaudio/best" {
			t.Errorf("format = %q", got)
		}
		if got := strValue(flags.VideoFormat.MergeOutputFormat); got != "mkv" {
			t.Errorf("merge output format = %q, expected mkv", got)
		}
		if got := strValue(flags.Filesystem.Output); got != filepath.Join("/videos", "%(title)s.%(ext)s") {
			t.Errorf("output = %q", got)
		}
		if got := strValue(flags.Download.LimitRate); got != "2M" {
			t.Errorf("limit rate = %q, expected 2M", got)
		}
		if !boolValue(flags.VideoSelection.NoPlaylist) {
			t.Error("no-playlist should be set")
		}
		if !boolValue(flags.General.IgnoreErrors) {
			t.Error("ignore-errors should be set")
		}
		if boolValue(flags.PostProcessing.ExtractAudio) {
			t.Error("video downloads should not extract audio")
		}
		if boolValue(flags.PostProcessing.EmbedThumbnail) || boolValue(flags.PostProcessing.EmbedMetadata) {
			t.Error("video downloads should not embed thumbnail or metadata")
		}
	})

	t.Run("audio", func(t *testing.T) {
		opts := OptionsFor(
			&model.QueueItem{Quality: model.QualityAudio, Format: model.FormatAudioMP3},
			config.Snapshot{OutputPath: "/music"},
		)
		flags := opts.Command().GetFlagConfig()

		if got := strValue(flags.VideoFormat.Format); got != AudioFormatSelector {
			t.Errorf("format = %q, expected %q", got, AudioFormatSelector)
		}
		if !boolValue(flags.PostProcessing.ExtractAudio) {
			t.Error("extract-audio should be set")
		}
		if got := strValue(flags.PostProcessing.AudioFormat); got != "mp3" {
			t.Errorf("audio format = %q, expected mp3", got)
		}
		if got := strValue(flags.PostProcessing.AudioQuality); got != DefaultAudioQuality {
			t.Errorf("audio quality = %q, expected %q", got, DefaultAudioQuality)
		}
		if !boolValue(flags.PostProcessing.EmbedThumbnail) {
			t.Error("embed-thumbnail should be set")
		}
		if !boolValue(flags.PostProcessing.EmbedMetadata) {
			t.Error("embed-metadata should be set")
		}
		if flags.VideoFormat.MergeOutputFormat != nil {
			t.Errorf("audio downloads should not set a merge format, got %q", *flags.VideoFormat.MergeOutputFormat)
		}
		if flags.Download.LimitRate != nil {
			t.Error("limit rate should be unset when no limit is configured")
		}
	})
}
