package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/areavii/av-downloader/internal/model"
)

// History table columns
const (
	HistoryColumnTitle = iota
	HistoryColumnURL
	HistoryColumnDate
	historyColumnCount
)

// HistoryTab lists finished downloads, newest first
type HistoryTab struct {
	localization *Localization
	entries      []model.HistoryEntry

	content  fyne.CanvasObject
	table    *widget.Table
	clearBtn *widget.Button
}

// NewHistoryTab creates the history page
func NewHistoryTab(localization *Localization, onClear func()) *HistoryTab {
	t := &HistoryTab{localization: localization}

	t.table = widget.NewTable(
		func() (int, int) {
			return len(t.entries), historyColumnCount
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label, ok := obj.(*widget.Label)
			if !ok {
				return
			}
			if id.Row < 0 || id.Row >= len(t.entries) {
				label.SetText("")
				return
			}
			label.SetText(historyCellText(t.entries[id.Row], id.Col))
		},
	)
	t.table.ShowHeaderRow = true
	t.table.CreateHeader = func() fyne.CanvasObject {
		label := widget.NewLabel("")
		label.TextStyle = fyne.TextStyle{Bold: true}
		return label
	}
	t.table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		if label, ok := obj.(*widget.Label); ok {
			label.SetText(t.headerText(id.Col))
		}
	}
	t.table.SetColumnWidth(HistoryColumnTitle, HistoryTitleWidth)
	t.table.SetColumnWidth(HistoryColumnURL, HistoryURLWidth)
	t.table.SetColumnWidth(HistoryColumnDate, HistoryDateWidth)

	t.clearBtn = widget.NewButton(localization.GetText(KeyClearHistory), onClear)
	t.content = container.NewBorder(nil, t.clearBtn, nil, nil, t.table)
	return t
}

// headerText returns the localized column title
func (t *HistoryTab) headerText(col int) string {
	switch col {
	case HistoryColumnTitle:
		return t.localization.GetText(KeyColumnTitle)
	case HistoryColumnURL:
		return t.localization.GetText(KeyColumnURL)
	case HistoryColumnDate:
		return t.localization.GetText(KeyColumnDate)
	default:
		return ""
	}
}

// historyCellText returns the text of a history table cell
func historyCellText(entry model.HistoryEntry, col int) string {
	switch col {
	case HistoryColumnTitle:
		return entry.Title
	case HistoryColumnURL:
		return entry.URL
	case HistoryColumnDate:
		return entry.Date
	default:
		return ""
	}
}

// SetEntries replaces the rows
func (t *HistoryTab) SetEntries(entries []model.HistoryEntry) {
	t.entries = entries
	t.table.Refresh()
}

// Entries returns the rows currently shown
func (t *HistoryTab) Entries() []model.HistoryEntry {
	return t.entries
}

// Content returns the tab body
func (t *HistoryTab) Content() fyne.CanvasObject {
	return t.content
}

// RefreshTexts re-renders texts in the current language
func (t *HistoryTab) RefreshTexts() {
	t.clearBtn.SetText(t.localization.GetText(KeyClearHistory))
	t.table.Refresh()
}
