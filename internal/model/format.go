package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// OutputFormat is the container/codec the user asks for
type OutputFormat string

const (
	FormatVideoMP4 OutputFormat = "video_mp4"
	FormatVideoMKV OutputFormat = "video_mkv"
	FormatAudioMP3 OutputFormat = "audio_mp3"
	FormatAudioM4A OutputFormat = "audio_m4a"
)

// Quality labels
const (
	QualityAudio       = "Audio"
	QualitySuffix      = "p"
	DefaultVideoHeight = 720
)

// Size formatting
const (
	SizeUnitBase = 1024
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

var outputFormatLabels = map[OutputFormat]string{
	FormatVideoMP4: "Video (MP4)",
	FormatVideoMKV: "Video (MKV)",
	FormatAudioMP3: "Audio (MP3)",
	FormatAudioM4A: "Audio (M4A)",
}

// AllOutputFormats returns the formats in the order they are offered
func AllOutputFormats() []OutputFormat {
	return []OutputFormat{FormatVideoMP4, FormatVideoMKV, FormatAudioMP3, FormatAudioM4A}
}

// ParseOutputFormat accepts either the stored key or the display label
func ParseOutputFormat(s string) (OutputFormat, bool) {
	for _, f := range AllOutputFormats() {
		if string(f) == s || f.Label() == s {
			return f, true
		}
	}
	return "", false
}

// Label returns the display label, e.g. "Video (MP4)"
func (f OutputFormat) Label() string {
	if label, ok := outputFormatLabels[f]; ok {
		return label
	}
	return string(f)
}

// IsAudio reports whether the format extracts audio only
func (f OutputFormat) IsAudio() bool {
	return f == FormatAudioMP3 || f == FormatAudioM4A
}

// Ext returns the merge container or the audio codec handed to yt-dlp
func (f OutputFormat) Ext() string {
	switch f {
	case FormatVideoMKV:
		return "mkv"
	case FormatAudioMP3:
		return "mp3"
	case FormatAudioM4A:
		return "m4a"
	default:
		return "mp4"
	}
}

// HeightLabel formats a height as a quality label ("1080p")
func HeightLabel(height int) string {
	return strconv.Itoa(height) + QualitySuffix
}

// ParseHeight extracts the height from a quality label, DefaultVideoHeight when it is not one
func ParseHeight(label string) int {
	label = strings.TrimSpace(label)
	if !strings.HasSuffix(label, QualitySuffix) {
		return DefaultVideoHeight
	}
	h, err := strconv.Atoi(strings.TrimSuffix(label, QualitySuffix))
	if err != nil || h <= 0 {
		return DefaultVideoHeight
	}
	return h
}

// Resolutions returns the distinct video heights offered by info, highest first
func Resolutions(info *VideoInfo) []int {
	if info == nil {
		return nil
	}
	seen := make(map[int]bool)
	var heights []int
	for _, f := range info.Formats {
		if f == nil || f.Height <= 0 || !f.HasVideo() {
			continue
		}
		if !seen[f.Height] {
			seen[f.Height] = true
			heights = append(heights, f.Height)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))
	return heights
}

// ResolutionLabels returns Resolutions as quality labels
func ResolutionLabels(info *VideoInfo) []string {
	heights := Resolutions(info)
	labels := make([]string, 0, len(heights))
	for _, h := range heights {
		labels = append(labels, HeightLabel(h))
	}
	return labels
}

// BestAudio returns the audio-only stream with the highest bitrate
func BestAudio(info *VideoInfo) *Format {
	var best *Format
	for _, f := range info.Formats {
		if f == nil || !f.IsAudioOnly() {
			continue
		}
		if best == nil || f.ABR > best.ABR {
			best = f
		}
	}
	return best
}

// BestVideoAt returns the video stream at exactly height with the highest total bitrate
func BestVideoAt(info *VideoInfo, height int) *Format {
	var best *Format
	for _, f := range info.Formats {
		if f == nil || f.Height != height || !f.HasVideo() {
			continue
		}
		if best == nil || f.TBR > best.TBR {
			best = f
		}
	}
	return best
}

// EstimateSize sums the streams yt-dlp would most likely pick for format and height
func EstimateSize(info *VideoInfo, format OutputFormat, height int) int64 {
	if info == nil || len(info.Formats) == 0 {
		return 0
	}

	var total int64
	if format.IsAudio() {
		if audio := BestAudio(info); audio != nil {
			total = audio.Size()
		}
		return total
	}

	if video := BestVideoAt(info, height); video != nil {
		total += video.Size()
	}
	if audio := BestAudio(info); audio != nil {
		total += audio.Size()
	}
	return total
}

// FormatFileSize renders bytes in base-1024 units rounded to two decimals,
// always keeping one decimal place ("2.0 KB", "1.07 KB")
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return NotAvailable
	}
	value := float64(bytes)
	i := 0
	for value >= SizeUnitBase && i < len(sizeUnits)-1 {
		value /= SizeUnitBase
		i++
	}
	value = math.Round(value*100) / 100
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return fmt.Sprintf("%s %s", text, sizeUnits[i])
}

// FormatDuration renders seconds as "Nm Ss"
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return NotAvailable
	}
	total := int(seconds)
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
