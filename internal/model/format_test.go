package model

import (
	"reflect"
	"testing"
)

func sampleInfo() *VideoInfo {
	return &VideoInfo{
		ID:    "abc",
		Title: "Sample",
		Formats: []*Format{
			{FormatID: "140", VCodec: "none", ACodec: "mp4a", ABR: 128, FileSize: 3_000_000},
			{FormatID: "251", VCodec: "none", ACodec: "opus", ABR: 160, FileSizeApprox: 4_000_000},
			{FormatID: "137", Height: 1080, VCodec: "avc1", ACodec: "none", TBR: 4000, FileSize: 90_000_000},
			{FormatID: "248", Height: 1080, VCodec: "vp9", ACodec: "none", TBR: 2500, FileSize: 60_000_000},
			{FormatID: "136", Height: 720, VCodec: "avc1", ACodec: "none", TBR: 2000, FileSize: 40_000_000},
			{FormatID: "18", Height: 360, VCodec: "avc1", ACodec: "mp4a", TBR: 600},
			{FormatID: "sb0", Height: 90, VCodec: "none", ACodec: "none"},
		},
	}
}

func TestResolutions(t *testing.T) {
	got := Resolutions(sampleInfo())
	want := []int{1080, 720, 360}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolutions() = %v, expected %v", got, want)
	}

	labels := ResolutionLabels(sampleInfo())
	if !reflect.DeepEqual(labels, []string{"1080p", "720p", "360p"}) {
		t.Errorf("ResolutionLabels() = %v", labels)
	}

	if got := Resolutions(&VideoInfo{}); len(got) != 0 {
		t.Errorf("Expected no resolutions for empty info, got %v", got)
	}
	if got := Resolutions(nil); got != nil {
		t.Errorf("Expected nil for nil info, got %v", got)
	}
}

func TestEstimateSize(t *testing.T) {
	info := sampleInfo()

	tests := []struct {
		name     string
		format   OutputFormat
		height   int
		expected int64
	}{
		{"audio picks highest abr", FormatAudioMP3, 0, 4_000_000},
		{"video picks highest tbr at height plus audio", FormatVideoMP4, 1080, 94_000_000},
		{"video at 720", FormatVideoMKV, 720, 44_000_000},
		{"unknown size counts as zero", FormatVideoMP4, 360, 4_000_000},
		{"missing height only audio", FormatVideoMP4, 480, 4_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateSize(info, tt.format, tt.height); got != tt.expected {
				t.Errorf("EstimateSize() = %d, expected %d", got, tt.expected)
			}
		})
	}

	if got := EstimateSize(&VideoInfo{}, FormatVideoMP4, 720); got != 0 {
		t.Errorf("Expected 0 for info without formats, got %d", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "N/A"},
		{-5, "N/A"},
		{512, "512.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{2048, "2.0 KB"},
		{1126, "1.1 KB"},
		{1048576, "1.0 MB"},
		{3623878, "3.46 MB"},
		{1 << 30, "1.0 GB"},
		{5 << 40, "5.0 TB"},
		{1 << 50, "1024.0 TB"},
	}

	for _, test := range tests {
		if got := FormatFileSize(test.bytes); got != test.expected {
			t.Errorf("FormatFileSize(%d) = %s, expected %s", test.bytes, got, test.expected)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "N/A"},
		{59, "0m 59s"},
		{61.7, "1m 1s"},
		{3725, "62m 5s"},
	}

	for _, test := range tests {
		if got := FormatDuration(test.seconds); got != test.expected {
			t.Errorf("FormatDuration(%v) = %s, expected %s", test.seconds, got, test.expected)
		}
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		format  OutputFormat
		label   string
		ext     string
		isAudio bool
	}{
		{FormatVideoMP4, "Video (MP4)", "mp4", false},
		{FormatVideoMKV, "Video (MKV)", "mkv", false},
		{FormatAudioMP3, "Audio (MP3)", "mp3", true},
		{FormatAudioM4A, "Audio (M4A)", "m4a", true},
	}

	for _, tt := range tests {
		if tt.format.Label() != tt.label {
			t.Errorf("%s.Label() = %s, expected %s", tt.format, tt.format.Label(), tt.label)
		}
		if tt.format.Ext() != tt.ext {
			t.Errorf("%s.Ext() = %s, expected %s", tt.format, tt.format.Ext(), tt.ext)
		}
		if tt.format.IsAudio() != tt.isAudio {
			t.Errorf("%s.IsAudio() = %v, expected %v", tt.format, tt.format.IsAudio(), tt.isAudio)
		}

		byLabel, ok := ParseOutputFormat(tt.label)
		if !ok || byLabel != tt.format {
			t.Errorf("ParseOutputFormat(%q) = %s, %v", tt.label, byLabel, ok)
		}
		byKey, ok := ParseOutputFormat(string(tt.format))
		if !ok || byKey != tt.format {
			t.Errorf("ParseOutputFormat(%q) = %s, %v", tt.format, byKey, ok)
		}
	}

	if _, ok := ParseOutputFormat("Video (AVI)"); ok {
		t.Error("Expected unknown label to be rejected")
	}
}

func TestParseHeight(t *testing.T) {
	tests := []struct {
		label    string
		expected int
	}{
		{"1080p", 1080},
		{" 480p ", 480},
		{"Audio", DefaultVideoHeight},
		{"", DefaultVideoHeight},
		{"xp", DefaultVideoHeight},
		{"0p", DefaultVideoHeight},
	}

	for _, test := range tests {
		if got := ParseHeight(test.label); got != test.expected {
			t.Errorf("ParseHeight(%q) = %d, expected %d", test.label, got, test.expected)
		}
	}
}
