package ui

import "fyne.io/fyne/v2"

// Window sizing
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 700
)

// Downloader tab sizing
var (
	ThumbnailSize   = fyne.NewSize(160, 90)
	PlaylistMinSize = fyne.NewSize(0, 160)
)

// Table column widths
const (
	QueueTitleWidth   float32 = 460
	QueueQualityWidth float32 = 90
	QueueFormatWidth  float32 = 120

	HistoryTitleWidth float32 = 300
	HistoryURLWidth   float32 = 260
	HistoryDateWidth  float32 = 150
)

// Tab order
const (
	TabDownloader = iota
	TabQueue
	TabHistory
	TabSettings
)

// Text fragments
const (
	ProgressLabelFormat = "%d%%"
	URLSchemeHTTP       = "http"
	URLSchemeHTTPS      = "https"
)
