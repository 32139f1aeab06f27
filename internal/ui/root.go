package ui

import (
	"context"
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/download"
	"github.com/areavii/av-downloader/internal/model"
	"github.com/areavii/av-downloader/internal/platform"
)

// InfoFetcher resolves a URL into previewable metadata
type InfoFetcher interface {
	Fetch(ctx context.Context, url string) (*platform.FetchResult, error)
}

// ThumbnailFetcher downloads preview images
type ThumbnailFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HistoryStore reads and clears the download history
type HistoryStore interface {
	Load() ([]model.HistoryEntry, error)
	Clear() error
}

// Services are the backends the window talks to
type Services struct {
	Info       InfoFetcher
	Thumbnails ThumbnailFetcher
	Runner     *download.Runner
	History    HistoryStore
}

// RootUI represents the main window
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	services     Services

	// queue backs the Download Queue tab; direct downloads use their own
	queue *download.Queue

	// UI components
	tabs          *container.AppTabs
	downloaderTab *DownloaderTab
	queueTab      *QueueTab
	historyTab    *HistoryTab
	settingsTab   *SettingsTab
	progress      *ProgressPanel
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, services Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		services:     services,
		queue:        download.NewQueue(),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	if logo, err := LoadLogoResource(); err == nil {
		window.SetIcon(logo)
	}

	ui.setupUI()
	ui.loadHistory()

	window.SetOnDropped(ui.onDropped)
	window.SetCloseIntercept(ui.onClose)
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.progress = NewProgressPanel(ui.localization, ui.onStopClick, ui.onOpenFolderClick)

	ui.downloaderTab = NewDownloaderTab(ui.window, ui.localization, ui.settings, ui.services.Info, ui.services.Thumbnails)
	ui.downloaderTab.SetHooks(DownloaderHooks{
		SetStatus:       ui.progress.SetStatus,
		OnDownloadNow:   ui.onDownloadNow,
		OnAddToQueue:    ui.onAddToQueue,
		OnFolderChanged: ui.onFolderChanged,
		OnInfoCleared:   ui.onInfoCleared,
	})

	ui.queueTab = NewQueueTab(ui.localization, ui.queue, ui.onStartQueue, ui.onClearQueue)
	ui.historyTab = NewHistoryTab(ui.localization, ui.onClearHistory)

	ui.settingsTab = NewSettingsTab(ui.window, ui.settings, ui.localization)
	ui.settingsTab.SetHooks(ui.progress.SetStatus, ui.onSettingsSaved)

	ui.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon(ui.localization.GetText(KeyTabDownloader), theme.DownloadIcon(), ui.downloaderTab.Content()),
		container.NewTabItemWithIcon(ui.localization.GetText(KeyTabQueue), theme.ListIcon(), ui.queueTab.Content()),
		container.NewTabItemWithIcon(ui.localization.GetText(KeyTabHistory), theme.HistoryIcon(), ui.historyTab.Content()),
		container.NewTabItemWithIcon(ui.localization.GetText(KeyTabSettings), theme.SettingsIcon(), ui.settingsTab.Content()),
	)
	ui.tabs.SetTabLocation(container.TabLocationTop)

	ui.window.SetContent(container.NewBorder(nil, ui.progress.Container(), nil, nil, ui.tabs))
}

// loadHistory fills the history table from the store
func (ui *RootUI) loadHistory() {
	if ui.services.History == nil {
		return
	}
	entries, err := ui.services.History.Load()
	if err != nil {
		log.Printf("Could not load history: %v", err)
		ui.progress.SetStatus(KeyStatusHistoryError, err.Error())
		return
	}
	ui.historyTab.SetEntries(entries)
}

// onDropped fetches the first dropped URL
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	ui.tabs.SelectIndex(TabDownloader)
	ui.downloaderTab.Fetch(uris[0].String())
}

// onClose stops a running download before the window goes away
func (ui *RootUI) onClose() {
	if ui.services.Runner != nil && ui.services.Runner.IsRunning() {
		log.Printf("Window closing while downloading, stopping first")
		ui.services.Runner.Stop()
	}
	ui.window.Close()
}

// onFolderChanged keeps the settings form in step with a folder picked in the downloader tab
func (ui *RootUI) onFolderChanged(dir string) {
	ui.settingsTab.SetFolder(dir)
}

// onInfoCleared resets the current download panel unless a download is running
func (ui *RootUI) onInfoCleared() {
	if ui.services.Runner != nil && ui.services.Runner.IsRunning() {
		return
	}
	ui.progress.ResetStats()
	ui.progress.HideOpenFolder()
}

// onAddToQueue appends items to the queue tab and switches to it
func (ui *RootUI) onAddToQueue(items []*model.QueueItem) {
	ui.queue.Add(items...)
	ui.queueTab.Refresh()
	ui.tabs.SelectIndex(TabQueue)
	ui.progress.SetStatus(KeyStatusAddedToQueue, len(items))
}

// onDownloadNow downloads items through a private queue so the queue tab stays untouched
func (ui *RootUI) onDownloadNow(items []*model.QueueItem) {
	direct := download.NewQueue()
	direct.Add(items...)
	ui.startRun(direct)
}

// onStartQueue drains the queue tab
func (ui *RootUI) onStartQueue() {
	ui.startRun(ui.queue)
}

// startRun hands queue to the runner and locks the controls
func (ui *RootUI) startRun(queue *download.Queue) {
	runner := ui.services.Runner
	if runner == nil {
		return
	}

	if runner.IsRunning() {
		ui.progress.SetStatus(KeyStatusBusy)
		return
	}

	runner.SetCallbacks(download.Callbacks{
		OnItemStarted:  ui.onItemStarted,
		OnProgress:     ui.onItemProgress,
		OnItemFinished: ui.onItemFinished,
		OnAllFinished:  ui.onAllFinished,
	})

	// Lock first: the drain goroutine may finish before Start returns
	ui.setDownloading(true)
	ui.progress.ResetStats()
	err := runner.Start(queue, ui.settings.Snapshot())
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, download.ErrBusy):
		ui.progress.SetStatus(KeyStatusBusy)
		return
	case errors.Is(err, download.ErrQueueEmpty):
		ui.progress.SetStatus(KeyStatusQueueEmpty)
	case errors.Is(err, download.ErrNoOutputPath):
		ui.progress.SetStatus(KeyStatusNoOutputPath)
		ui.tabs.SelectIndex(TabSettings)
	default:
		log.Printf("Could not start downloads: %v", err)
	}
	ui.setDownloading(false)
}

// setDownloading toggles every control that depends on a running download
func (ui *RootUI) setDownloading(downloading bool) {
	ui.progress.SetRunning(downloading)
	ui.downloaderTab.SetDownloading(downloading)
	ui.queueTab.SetDownloading(downloading)
}

// onItemStarted runs on the drain goroutine
func (ui *RootUI) onItemStarted(item *model.QueueItem) {
	title := item.GetDisplayTitle()
	fyne.Do(func() {
		ui.queueTab.Refresh()
		ui.progress.ResetStats()
		ui.progress.SetStatus(KeyStatusDownloading, title)
	})
}

// onItemProgress runs on the drain goroutine
func (ui *RootUI) onItemProgress(_ *model.QueueItem, progress model.Progress) {
	fyne.Do(func() {
		if progress.Stage == model.StagePostProcessing && ui.progress.statusKey != KeyStatusPostProcessing {
			ui.progress.SetStatus(KeyStatusPostProcessing)
		}
		ui.progress.ShowProgress(progress)
	})
}

// onItemFinished runs on the drain goroutine
func (ui *RootUI) onItemFinished(item *model.QueueItem, err error) {
	title := item.GetDisplayTitle()
	fyne.Do(func() {
		switch {
		case err == nil:
			ui.loadHistory()
		case download.IsCancelled(err):
		default:
			ui.progress.SetStatus(KeyStatusItemFailed, title, err.Error())
		}
	})
}

// onAllFinished runs on the drain goroutine
func (ui *RootUI) onAllFinished(stopped bool) {
	fyne.Do(func() {
		ui.setDownloading(false)
		ui.queueTab.Refresh()

		if stopped {
			ui.progress.ResetStats()
			ui.progress.SetStatus(KeyStatusStopped)
			return
		}

		ui.progress.ShowProgress(model.Progress{Percent: 100, ETASec: -1, Stage: model.StageFinished})
		ui.progress.SetStatus(KeyStatusAllCompleted)
		ui.progress.ShowOpenFolder()
		if ui.settings.GetOpenFolderOnFinish() {
			ui.onOpenFolderClick()
		}
	})
}

// onStopClick stops the running download and clears what is left of its queue
func (ui *RootUI) onStopClick() {
	if ui.services.Runner == nil {
		return
	}
	ui.services.Runner.Stop()
	ui.queueTab.Refresh()
	ui.progress.SetStatus(KeyStatusStopped)
}

// onOpenFolderClick opens the download folder in the file manager
func (ui *RootUI) onOpenFolderClick() {
	dir := ui.settings.GetOutputPath()
	if dir == "" || !platform.DirectoryExists(dir) {
		ui.progress.SetStatus(KeyStatusFolderNotFound)
		return
	}
	if err := platform.OpenFolder(dir); err != nil {
		log.Printf("Failed to open folder %s: %v", dir, err)
		ui.progress.SetStatus(KeyStatusFolderNotFound)
	}
}

// onClearQueue empties the queue tab unless a download is running
func (ui *RootUI) onClearQueue() {
	if ui.services.Runner != nil && ui.services.Runner.IsRunning() {
		return
	}
	ui.queue.Clear()
	ui.queueTab.Refresh()
	ui.progress.SetStatus(KeyStatusQueueCleared)
}

// onClearHistory removes the history file and empties the table
func (ui *RootUI) onClearHistory() {
	if ui.services.History != nil {
		if err := ui.services.History.Clear(); err != nil {
			log.Printf("Error removing history file: %v", err)
			ui.progress.SetStatus(KeyStatusHistoryError, err.Error())
			return
		}
	}
	ui.historyTab.SetEntries(nil)
	ui.progress.SetStatus(KeyStatusHistoryCleared)
}

// onSettingsSaved applies a language change to every visible text
func (ui *RootUI) onSettingsSaved(languageChanged bool) {
	if !languageChanged {
		return
	}
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	tabKeys := []string{KeyTabDownloader, KeyTabQueue, KeyTabHistory, KeyTabSettings}
	for i, key := range tabKeys {
		if i < len(ui.tabs.Items) {
			ui.tabs.Items[i].Text = ui.localization.GetText(key)
		}
	}
	ui.tabs.Refresh()

	ui.downloaderTab.RefreshTexts()
	ui.queueTab.RefreshTexts()
	ui.historyTab.RefreshTexts()
	ui.settingsTab.RefreshTexts()
	ui.progress.RefreshTexts()
}

// Window returns the main window
func (ui *RootUI) Window() fyne.Window {
	return ui.window
}
