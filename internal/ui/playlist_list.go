package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/areavii/av-downloader/internal/model"
)

// PlaylistList shows the entries of a fetched playlist as a checklist.
// Entries start checked.
type PlaylistList struct {
	localization *Localization

	title   string
	entries []*model.VideoInfo
	checked []bool

	// UI components
	container    *fyne.Container
	header       *widget.Label
	list         *widget.List
	selectAllBtn *widget.Button
	selectNoBtn  *widget.Button
}

// NewPlaylistList creates an empty, hidden checklist
func NewPlaylistList(localization *Localization) *PlaylistList {
	pl := &PlaylistList{localization: localization}
	pl.createUI()
	pl.container.Hide()
	return pl
}

// createUI creates the checklist widgets
func (pl *PlaylistList) createUI() {
	pl.header = widget.NewLabel("")
	pl.header.TextStyle = fyne.TextStyle{Bold: true}
	pl.header.Truncation = fyne.TextTruncateEllipsis

	pl.list = widget.NewList(
		func() int {
			return len(pl.entries)
		},
		func() fyne.CanvasObject {
			return widget.NewCheck("", nil)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			pl.updateRow(id, obj)
		},
	)

	pl.selectAllBtn = widget.NewButton(pl.localization.GetText(KeySelectAll), func() { pl.SetAllChecked(true) })
	pl.selectNoBtn = widget.NewButton(pl.localization.GetText(KeySelectNone), func() { pl.SetAllChecked(false) })
	pl.selectAllBtn.Importance = widget.LowImportance
	pl.selectNoBtn.Importance = widget.LowImportance

	top := container.NewBorder(nil, nil, nil, container.NewHBox(pl.selectAllBtn, pl.selectNoBtn), pl.header)
	scroll := container.NewScroll(pl.list)
	scroll.SetMinSize(PlaylistMinSize)

	pl.container = container.NewBorder(top, nil, nil, nil, scroll)
}

// updateRow binds a row to its entry
func (pl *PlaylistList) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	check, ok := obj.(*widget.Check)
	if !ok || id < 0 || id >= len(pl.entries) {
		return
	}

	// Detach before SetChecked so the old handler does not fire for the new row
	check.OnChanged = nil
	check.Text = fmt.Sprintf("%d. %s", id+1, pl.entries[id].DisplayTitle())
	check.SetChecked(pl.checked[id])
	check.OnChanged = func(on bool) {
		if id < len(pl.checked) {
			pl.checked[id] = on
		}
	}
	check.Refresh()
}

// SetEntries replaces the checklist and shows it
func (pl *PlaylistList) SetEntries(title string, entries []*model.VideoInfo) {
	pl.title = title
	pl.entries = entries
	pl.checked = make([]bool, len(entries))
	for i := range pl.checked {
		pl.checked[i] = true
	}
	pl.header.SetText(pl.localization.Format(KeyPlaylistItems, title))
	pl.list.UnselectAll()
	pl.list.Refresh()
	pl.container.Show()
}

// Clear empties and hides the checklist
func (pl *PlaylistList) Clear() {
	pl.title = ""
	pl.entries = nil
	pl.checked = nil
	pl.header.SetText("")
	pl.list.Refresh()
	pl.container.Hide()
}

// SetAllChecked checks or unchecks every entry
func (pl *PlaylistList) SetAllChecked(on bool) {
	for i := range pl.checked {
		pl.checked[i] = on
	}
	pl.list.Refresh()
}

// SetChecked checks or unchecks a single entry
func (pl *PlaylistList) SetChecked(index int, on bool) {
	if index < 0 || index >= len(pl.checked) {
		return
	}
	pl.checked[index] = on
	pl.list.RefreshItem(index)
}

// Selected returns the checked entries in playlist order
func (pl *PlaylistList) Selected() []*model.VideoInfo {
	selected := make([]*model.VideoInfo, 0, len(pl.entries))
	for i, entry := range pl.entries {
		if pl.checked[i] {
			selected = append(selected, entry)
		}
	}
	return selected
}

// Len returns the number of entries
func (pl *PlaylistList) Len() int {
	return len(pl.entries)
}

// Container returns the checklist widget
func (pl *PlaylistList) Container() fyne.CanvasObject {
	return pl.container
}

// RefreshTexts re-renders texts in the current language
func (pl *PlaylistList) RefreshTexts() {
	pl.selectAllBtn.SetText(pl.localization.GetText(KeySelectAll))
	pl.selectNoBtn.SetText(pl.localization.GetText(KeySelectNone))
	if pl.entries != nil {
		pl.header.SetText(pl.localization.Format(KeyPlaylistItems, pl.title))
	}
}
