package ui

import (
	"context"
	"errors"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/download"
	"github.com/areavii/av-downloader/internal/model"
	"github.com/areavii/av-downloader/internal/platform"
)

// Thumbnail resource name
const ThumbnailResourceName = "thumbnail"

// DownloaderTab is the URL input, options and preview page
type DownloaderTab struct {
	window       fyne.Window
	localization *Localization
	settings     *config.Settings
	info         InfoFetcher
	thumbnails   ThumbnailFetcher

	hooks DownloaderHooks

	result      *platform.FetchResult
	fetchSeq    int
	fetching    bool
	downloading bool

	// UI components
	content        fyne.CanvasObject
	inputCard      *widget.Card
	optionsCard    *widget.Card
	infoCard       *widget.Card
	urlEntry       *widget.Entry
	fetchBtn       *widget.Button
	formatLabel    *widget.Label
	formatSelect   *widget.Select
	qualityLabel   *widget.Label
	qualitySelect  *widget.Select
	folderBtn      *widget.Button
	thumbnail      *canvas.Image
	titleLabel     *widget.Label
	durationLabel  *widget.Label
	sizeLabel      *widget.Label
	playlist       *PlaylistList
	downloadNowBtn *widget.Button
	addQueueBtn    *widget.Button
	clearInfoBtn   *widget.Button
}

// NewDownloaderTab creates the downloader page
func NewDownloaderTab(window fyne.Window, localization *Localization, settings *config.Settings, info InfoFetcher, thumbnails ThumbnailFetcher) *DownloaderTab {
	t := &DownloaderTab{
		window:       window,
		localization: localization,
		settings:     settings,
		info:         info,
		thumbnails:   thumbnails,
	}
	t.createUI()
	t.resetInfo()
	return t
}

// DownloaderHooks connect the tab to the rest of the window. Nil hooks are skipped.
type DownloaderHooks struct {
	SetStatus       func(key string, args ...any)
	OnDownloadNow   func(items []*model.QueueItem)
	OnAddToQueue    func(items []*model.QueueItem)
	OnFolderChanged func(dir string)
	OnInfoCleared   func()
}

// SetHooks wires the tab to the status line and the download actions
func (t *DownloaderTab) SetHooks(hooks DownloaderHooks) {
	t.hooks = hooks
}

func (t *DownloaderTab) setStatus(key string, args ...any) {
	if t.hooks.SetStatus != nil {
		t.hooks.SetStatus(key, args...)
	}
}

// createUI builds the widgets
func (t *DownloaderTab) createUI() {
	t.urlEntry = widget.NewEntry()
	t.urlEntry.SetPlaceHolder(t.localization.GetText(KeyEnterURL))
	t.urlEntry.OnSubmitted = func(string) {
		t.onFetchClick()
	}
	t.fetchBtn = widget.NewButton(t.localization.GetText(KeyFetchInfo), t.onFetchClick)
	t.fetchBtn.Importance = widget.HighImportance
	t.inputCard = widget.NewCard(t.localization.GetText(KeyURLInput), "",
		container.NewBorder(nil, nil, nil, t.fetchBtn, t.urlEntry))

	formats := model.AllOutputFormats()
	formatLabels := make([]string, 0, len(formats))
	for _, f := range formats {
		formatLabels = append(formatLabels, f.Label())
	}
	t.formatLabel = widget.NewLabel(t.localization.GetText(KeyFormat))
	t.formatSelect = widget.NewSelect(formatLabels, func(string) {
		t.onFormatChanged()
	})
	t.qualityLabel = widget.NewLabel(t.localization.GetText(KeyQuality))
	t.qualitySelect = widget.NewSelect(nil, func(string) {
		t.updateEstimatedSize()
	})
	t.folderBtn = widget.NewButton(t.localization.GetText(KeySelectOutputFolder), t.onSelectFolder)

	options := container.New(layout.NewFormLayout(), t.formatLabel, t.formatSelect, t.qualityLabel, t.qualitySelect)
	t.optionsCard = widget.NewCard(t.localization.GetText(KeyDownloadOptions), "",
		container.NewVBox(options, t.folderBtn))

	t.thumbnail = canvas.NewImageFromResource(nil)
	t.thumbnail.FillMode = canvas.ImageFillContain
	t.thumbnail.SetMinSize(ThumbnailSize)
	t.titleLabel = widget.NewLabel("")
	t.titleLabel.Wrapping = fyne.TextWrapWord
	t.durationLabel = widget.NewLabel("")
	t.sizeLabel = widget.NewLabel("")
	t.infoCard = widget.NewCard(t.localization.GetText(KeyVideoInformation), "",
		container.NewBorder(nil, nil, t.thumbnail, nil,
			container.NewVBox(t.titleLabel, t.durationLabel, t.sizeLabel)))

	t.playlist = NewPlaylistList(t.localization)

	t.downloadNowBtn = widget.NewButton(t.localization.GetText(KeyDownloadNow), t.onDownloadNowClick)
	t.downloadNowBtn.Importance = widget.HighImportance
	t.addQueueBtn = widget.NewButton(t.localization.GetText(KeyAddToQueue), t.onAddToQueueClick)
	t.clearInfoBtn = widget.NewButton(t.localization.GetText(KeyClearInfo), t.onClearInfoClick)
	actions := container.NewGridWithColumns(3, t.downloadNowBtn, t.addQueueBtn, t.clearInfoBtn)

	top := container.NewVBox(t.inputCard, t.optionsCard, t.infoCard)
	t.content = container.NewBorder(top, actions, nil, nil, t.playlist.Container())

	t.formatSelect.SetSelected(t.settings.GetDefaultFormat().Label())
}

// Content returns the tab body
func (t *DownloaderTab) Content() fyne.CanvasObject {
	return t.content
}

// SetURL puts text into the URL entry, keeping only the first URL found in it
func (t *DownloaderTab) SetURL(text string) {
	t.urlEntry.SetText(ExtractURL(text))
}

// Fetch fills the URL entry with text and starts a fetch
func (t *DownloaderTab) Fetch(text string) {
	t.SetURL(text)
	t.onFetchClick()
}

// onFetchClick validates the entry and fetches metadata in the background
func (t *DownloaderTab) onFetchClick() {
	if t.fetching {
		return
	}

	url := ExtractURL(t.urlEntry.Text)
	if url == "" {
		t.setStatus(KeyStatusPleaseEnterURL)
		return
	}
	if err := validateURL(url); err != nil {
		t.setStatus(KeyStatusInvalidURL, err.Error())
		return
	}
	if url != t.urlEntry.Text {
		t.urlEntry.SetText(url)
	}

	t.resetInfo()
	t.fetching = true
	t.fetchSeq++
	seq := t.fetchSeq
	t.updateControls()
	t.setStatus(KeyStatusFetching)

	go func() {
		result, err := t.info.Fetch(context.Background(), url)
		fyne.Do(func() {
			t.onFetched(seq, result, err)
		})
	}()
}

// onFetched applies a finished fetch. Results of a superseded fetch are dropped.
func (t *DownloaderTab) onFetched(seq int, result *platform.FetchResult, err error) {
	if seq != t.fetchSeq {
		return
	}
	t.fetching = false
	defer t.updateControls()

	if err != nil {
		log.Printf("Fetch failed: %v", err)
		switch {
		case errors.Is(err, platform.ErrLiveStream):
			t.setStatus(KeyStatusLiveStream)
		case errors.Is(err, platform.ErrEmptyPlaylist):
			t.setStatus(KeyStatusEmptyPlaylist)
		default:
			t.setStatus(KeyStatusFetchError, err.Error())
		}
		return
	}
	if result == nil || result.Preview == nil || len(result.Items) == 0 {
		t.setStatus(KeyStatusFetchError, "no information returned")
		return
	}

	t.result = result
	t.setQualities(result.Preview)
	t.showPreview(result.Preview)

	if result.IsPlaylist {
		t.playlist.SetEntries(result.PlaylistTitle, result.Items)
		t.setStatus(KeyStatusPlaylistFetched, len(result.Items))
	} else {
		t.playlist.Clear()
		t.setStatus(KeyStatusVideoFetched)
	}

	if result.Preview.Thumbnail != "" && t.thumbnails != nil {
		go t.loadThumbnail(seq, result.Preview.Thumbnail)
	}
}

// showPreview fills the info panel
func (t *DownloaderTab) showPreview(info *model.VideoInfo) {
	t.titleLabel.SetText(t.localization.Format(KeyTitle, info.DisplayTitle()))
	t.durationLabel.SetText(t.localization.Format(KeyDuration, model.FormatDuration(info.Duration)))
	t.onFormatChanged()
}

// setQualities offers the heights available in info, highest preselected
func (t *DownloaderTab) setQualities(info *model.VideoInfo) {
	qualities := model.ResolutionLabels(info)
	t.qualitySelect.Options = qualities
	t.qualitySelect.ClearSelected()
	if len(qualities) > 0 {
		t.qualitySelect.Enable()
		t.qualitySelect.SetSelected(qualities[0])
	} else {
		t.qualitySelect.Disable()
	}
	t.qualitySelect.Refresh()
}

// loadThumbnail downloads the preview image off the UI thread
func (t *DownloaderTab) loadThumbnail(seq int, url string) {
	data, err := t.thumbnails.Fetch(context.Background(), url)
	if err != nil {
		log.Printf("Could not load thumbnail: %v", err)
		return
	}
	fyne.Do(func() {
		if seq != t.fetchSeq || t.result == nil {
			return
		}
		t.thumbnail.Resource = fyne.NewStaticResource(ThumbnailResourceName, data)
		t.thumbnail.Refresh()
	})
}

// selectedFormat returns the format picked in the select
func (t *DownloaderTab) selectedFormat() model.OutputFormat {
	if f, ok := model.ParseOutputFormat(t.formatSelect.Selected); ok {
		return f
	}
	return config.DefaultFormat
}

// selectedQuality returns the quality label stamped on new items
func (t *DownloaderTab) selectedQuality() string {
	if t.selectedFormat().IsAudio() {
		return model.QualityAudio
	}
	return t.qualitySelect.Selected
}

// onFormatChanged hides the quality choice for audio formats
func (t *DownloaderTab) onFormatChanged() {
	if t.selectedFormat().IsAudio() {
		t.qualityLabel.Hide()
		t.qualitySelect.Hide()
	} else {
		t.qualityLabel.Show()
		t.qualitySelect.Show()
	}
	t.updateEstimatedSize()
}

// updateEstimatedSize recomputes the size line for the current selection
func (t *DownloaderTab) updateEstimatedSize() {
	if t.result == nil || t.result.Preview == nil || len(t.result.Preview.Formats) == 0 {
		t.sizeLabel.SetText(t.localization.Format(KeyEstimatedSize, model.NotAvailable))
		return
	}

	format := t.selectedFormat()
	height := 0
	if !format.IsAudio() {
		if t.qualitySelect.Selected == "" {
			return
		}
		height = model.ParseHeight(t.qualitySelect.Selected)
	}
	size := model.EstimateSize(t.result.Preview, format, height)
	t.sizeLabel.SetText(t.localization.Format(KeyEstimatedSize, model.FormatFileSize(size)))
}

// selectedInfos returns the checked playlist entries, or the single fetched video
func (t *DownloaderTab) selectedInfos() []*model.VideoInfo {
	if t.result == nil {
		return nil
	}
	if t.result.IsPlaylist {
		return t.playlist.Selected()
	}
	return t.result.Items[:1]
}

// selectedItems stamps the selection with the chosen quality and format
func (t *DownloaderTab) selectedItems() []*model.QueueItem {
	return download.NewItems(t.selectedInfos(), t.selectedQuality(), t.selectedFormat())
}

// onDownloadNowClick downloads the selection without touching the queue
func (t *DownloaderTab) onDownloadNowClick() {
	if t.downloading {
		return
	}
	items := t.selectedItems()
	if len(items) == 0 {
		t.setStatus(KeyStatusNoItemsToDownload)
		return
	}
	if t.hooks.OnDownloadNow != nil {
		t.hooks.OnDownloadNow(items)
	}
}

// onAddToQueueClick appends the selection to the download queue
func (t *DownloaderTab) onAddToQueueClick() {
	items := t.selectedItems()
	if len(items) == 0 {
		t.setStatus(KeyStatusNoItemsToAdd)
		return
	}
	if t.hooks.OnAddToQueue != nil {
		t.hooks.OnAddToQueue(items)
	}
}

// onClearInfoClick forgets the fetched info
func (t *DownloaderTab) onClearInfoClick() {
	t.fetchSeq++
	t.fetching = false
	t.urlEntry.SetText("")
	t.resetInfo()
	t.updateControls()
	if t.hooks.OnInfoCleared != nil {
		t.hooks.OnInfoCleared()
	}
}

// onSelectFolder asks for the output folder and persists it
func (t *DownloaderTab) onSelectFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		t.SetOutputFolder(uri.Path())
	}, t.window)
}

// SetOutputFolder stores dir as the download folder
func (t *DownloaderTab) SetOutputFolder(dir string) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return
	}
	t.settings.SetOutputPath(dir)
	if t.hooks.OnFolderChanged != nil {
		t.hooks.OnFolderChanged(dir)
	}
	t.setStatus(KeyStatusOutputFolderSet, dir)
}

// resetInfo clears the preview, the quality choices and the playlist
func (t *DownloaderTab) resetInfo() {
	t.result = nil
	t.titleLabel.SetText(t.localization.Format(KeyTitle, ""))
	t.durationLabel.SetText(t.localization.Format(KeyDuration, ""))
	t.sizeLabel.SetText(t.localization.Format(KeyEstimatedSize, ""))
	t.thumbnail.Resource = nil
	t.thumbnail.Refresh()
	t.qualitySelect.Options = nil
	t.qualitySelect.ClearSelected()
	t.qualitySelect.Refresh()
	t.playlist.Clear()
	t.updateControls()
}

// SetDownloading locks the fetch and action controls while the runner works
func (t *DownloaderTab) SetDownloading(downloading bool) {
	t.downloading = downloading
	t.updateControls()
}

// updateControls enables buttons according to the fetch and download state
func (t *DownloaderTab) updateControls() {
	if t.fetching || t.downloading {
		t.fetchBtn.Disable()
	} else {
		t.fetchBtn.Enable()
	}

	actionsEnabled := t.result != nil && !t.fetching && !t.downloading
	for _, btn := range []*widget.Button{t.downloadNowBtn, t.addQueueBtn, t.clearInfoBtn} {
		if actionsEnabled {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

// HasInfo reports whether fetched info is shown
func (t *DownloaderTab) HasInfo() bool {
	return t.result != nil
}

// RefreshTexts re-renders texts in the current language
func (t *DownloaderTab) RefreshTexts() {
	t.inputCard.SetTitle(t.localization.GetText(KeyURLInput))
	t.optionsCard.SetTitle(t.localization.GetText(KeyDownloadOptions))
	t.infoCard.SetTitle(t.localization.GetText(KeyVideoInformation))
	t.urlEntry.SetPlaceHolder(t.localization.GetText(KeyEnterURL))
	t.fetchBtn.SetText(t.localization.GetText(KeyFetchInfo))
	t.formatLabel.SetText(t.localization.GetText(KeyFormat))
	t.qualityLabel.SetText(t.localization.GetText(KeyQuality))
	t.folderBtn.SetText(t.localization.GetText(KeySelectOutputFolder))
	t.downloadNowBtn.SetText(t.localization.GetText(KeyDownloadNow))
	t.addQueueBtn.SetText(t.localization.GetText(KeyAddToQueue))
	t.clearInfoBtn.SetText(t.localization.GetText(KeyClearInfo))
	t.playlist.RefreshTexts()

	if t.result != nil {
		t.showPreview(t.result.Preview)
		return
	}
	t.titleLabel.SetText(t.localization.Format(KeyTitle, ""))
	t.durationLabel.SetText(t.localization.Format(KeyDuration, ""))
	t.sizeLabel.SetText(t.localization.Format(KeyEstimatedSize, ""))
}
