package model

import (
	"fmt"
	"strings"
	"time"
)

// QueueItem is one pending download: a copy of the fetched metadata plus the
// quality and format chosen when it was queued.
type QueueItem struct {
	ID         string
	Info       *VideoInfo
	Quality    string // "720p" style label or QualityAudio
	Format     OutputFormat
	Status     TaskStatus
	LastError  string
	OutputPath string
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewQueueItem stamps info with the current selection. Audio formats always use QualityAudio.
func NewQueueItem(id string, info *VideoInfo, quality string, format OutputFormat) *QueueItem {
	if format.IsAudio() {
		quality = QualityAudio
	}
	return &QueueItem{
		ID:      id,
		Info:    info.Clone(),
		Quality: quality,
		Format:  format,
		Status:  TaskStatusPending,
	}
}

// Height returns the requested maximum video height
func (qi *QueueItem) Height() int {
	return ParseHeight(qi.Quality)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (qi *QueueItem) GetDisplayTitle() string {
	if qi.Info != nil && strings.TrimSpace(qi.Info.Title) != "" && !strings.HasPrefix(qi.Info.Title, "http") {
		return strings.TrimSpace(qi.Info.Title)
	}

	if qi.OutputPath != "" {
		parts := strings.FieldsFunc(qi.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	if qi.Info != nil && qi.Info.SourceURL() != "" {
		return qi.Info.SourceURL()
	}
	return UntitledItem
}

// Stage describes what the download worker is doing
type Stage string

const (
	StageDownloading    Stage = "downloading"
	StagePostProcessing Stage = "postprocessing"
	StageFinished       Stage = "finished"
)

// Progress is a snapshot of the running download
type Progress struct {
	Percent int    // 0 to 100, -1 if unknown
	Speed   string // human readable speed (e.g., "1.2MB/s"), empty if unknown
	ETASec  int    // ETA in seconds, -1 if unknown
	Stage   Stage
}

// GetETAString returns ETA formatted as hh:mm:ss or mm:ss, or N/A if unknown
func (p Progress) GetETAString() string {
	if p.ETASec <= 0 {
		return NotAvailable
	}

	hours := p.ETASec / 3600
	minutes := (p.ETASec % 3600) / 60
	seconds := p.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetSpeedString returns the speed or N/A
func (p Progress) GetSpeedString() string {
	if p.Speed == "" {
		return NotAvailable
	}
	return p.Speed
}
