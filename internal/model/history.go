package model

import "time"

// HistoryDateLayout is the timestamp format stored in history records
const HistoryDateLayout = "2006-01-02 15:04:05"

// HistoryEntry is one completed download as persisted in history.json
type HistoryEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"`
}

// NewHistoryEntry builds a record for info completed at t
func NewHistoryEntry(info *VideoInfo, t time.Time) HistoryEntry {
	entry := HistoryEntry{
		Title: NotAvailable,
		URL:   NotAvailable,
		Date:  t.Format(HistoryDateLayout),
	}
	if info == nil {
		return entry
	}
	if info.Title != "" {
		entry.Title = info.Title
	}
	if info.WebpageURL != "" {
		entry.URL = info.WebpageURL
	} else if info.URL != "" {
		entry.URL = info.URL
	}
	return entry
}
