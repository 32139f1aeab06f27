package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/areavii/av-downloader/internal/download"
	"github.com/areavii/av-downloader/internal/model"
)

// Queue table columns
const (
	QueueColumnTitle = iota
	QueueColumnQuality
	QueueColumnFormat
	queueColumnCount
)

// QueueTab lists the queued downloads
type QueueTab struct {
	localization *Localization
	queue        *download.Queue

	// rows is the snapshot shown by the table, refreshed from queue
	rows []*model.QueueItem

	content  fyne.CanvasObject
	table    *widget.Table
	startBtn *widget.Button
	clearBtn *widget.Button
}

// NewQueueTab creates the queue page over queue
func NewQueueTab(localization *Localization, queue *download.Queue, onStart, onClear func()) *QueueTab {
	t := &QueueTab{
		localization: localization,
		queue:        queue,
	}

	t.table = widget.NewTable(
		func() (int, int) {
			return len(t.rows), queueColumnCount
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			t.updateCell(id, obj)
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
	t.table.SetColumnWidth(QueueColumnTitle, QueueTitleWidth)
	t.table.SetColumnWidth(QueueColumnQuality, QueueQualityWidth)
	t.table.SetColumnWidth(QueueColumnFormat, QueueFormatWidth)

	t.startBtn = widget.NewButton(localization.GetText(KeyStartQueue), onStart)
	t.startBtn.Importance = widget.HighImportance
	t.clearBtn = widget.NewButton(localization.GetText(KeyClearQueue), onClear)

	t.content = container.NewBorder(nil, container.NewGridWithColumns(2, t.startBtn, t.clearBtn), nil, nil, t.table)
	return t
}

// headerText returns the localized column title
func (t *QueueTab) headerText(col int) string {
	switch col {
	case QueueColumnTitle:
		return t.localization.GetText(KeyColumnTitle)
	case QueueColumnQuality:
		return t.localization.GetText(KeyColumnQuality)
	case QueueColumnFormat:
		return t.localization.GetText(KeyColumnFormat)
	default:
		return ""
	}
}

// updateCell renders one cell
func (t *QueueTab) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label, ok := obj.(*widget.Label)
	if !ok {
		return
	}
	if id.Row < 0 || id.Row >= len(t.rows) {
		label.SetText("")
		return
	}
	label.SetText(queueCellText(t.rows[id.Row], id.Col))
}

// queueCellText returns the text of a queue table cell
func queueCellText(item *model.QueueItem, col int) string {
	switch col {
	case QueueColumnTitle:
		return item.GetDisplayTitle()
	case QueueColumnQuality:
		return item.Quality
	case QueueColumnFormat:
		return item.Format.Label()
	default:
		return ""
	}
}

// Refresh reloads the rows from the queue
func (t *QueueTab) Refresh() {
	t.rows = t.queue.Items()
	t.table.Refresh()
}

// Rows returns the items currently shown
func (t *QueueTab) Rows() []*model.QueueItem {
	return t.rows
}

// SetDownloading locks the buttons while the runner works
func (t *QueueTab) SetDownloading(downloading bool) {
	if downloading {
		t.startBtn.Disable()
		t.clearBtn.Disable()
		return
	}
	t.startBtn.Enable()
	t.clearBtn.Enable()
}

// Content returns the tab body
func (t *QueueTab) Content() fyne.CanvasObject {
	return t.content
}

// RefreshTexts re-renders texts in the current language
func (t *QueueTab) RefreshTexts() {
	t.startBtn.SetText(t.localization.GetText(KeyStartQueue))
	t.clearBtn.SetText(t.localization.GetText(KeyClearQueue))
	t.table.Refresh()
}
