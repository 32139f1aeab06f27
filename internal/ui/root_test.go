package ui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/download"
	"github.com/areavii/av-downloader/internal/model"
	"github.com/areavii/av-downloader/internal/platform"
)

type fakeInfo struct {
	result *platform.FetchResult
	err    error
}

func (f *fakeInfo) Fetch(ctx context.Context, url string) (*platform.FetchResult, error) {
	return f.result, f.err
}

type fakeHistory struct {
	mu      sync.Mutex
	entries []model.HistoryEntry
	cleared bool
}

func (f *fakeHistory) Load() ([]model.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.HistoryEntry(nil), f.entries...), nil
}

func (f *fakeHistory) Add(info *model.VideoInfo) (model.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := model.NewHistoryEntry(info, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	f.entries = append([]model.HistoryEntry{entry}, f.entries...)
	return entry, nil
}

func (f *fakeHistory) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = nil
	f.cleared = true
	return nil
}

type fakeDownloader struct {
	started chan string
	block   chan struct{}
}

func (f *fakeDownloader) Download(ctx context.Context, item *model.QueueItem, settings config.Snapshot, onProgress func(model.Progress)) (*download.Result, error) {
	if f.started != nil {
		f.started <- item.Info.ID
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	onProgress(model.Progress{Percent: 50, Speed: "1.0MB/s", ETASec: 10, Stage: model.StageDownloading})
	return &download.Result{OutputPath: settings.OutputPath + "/" + item.Info.ID + ".mp4"}, nil
}

func testVideo(id, title string) *model.VideoInfo {
	return &model.VideoInfo{
		ID:         id,
		Title:      title,
		WebpageURL: "https://www.youtube.com/watch?v=" + id,
		Duration:   125,
		Formats: []*model.Format{
			{FormatID: "137", Height: 1080, VCodec: "avc1", ACodec: "none", TBR: 4000, FileSize: 1000},
			{FormatID: "136", Height: 720, VCodec: "avc1", ACodec: "none", TBR: 2000, FileSize: 500},
			{FormatID: "140", VCodec: "none", ACodec: "mp4a", ABR: 128, FileSize: 100},
		},
	}
}

func singleResult(id, title string) *platform.FetchResult {
	video := testVideo(id, title)
	return &platform.FetchResult{Preview: video, Items: []*model.VideoInfo{video}}
}

type testRoot struct {
	*RootUI
	settings *config.Settings
	history  *fakeHistory
	runner   *download.Runner
}

func newTestRoot(t *testing.T, info InfoFetcher, downloader download.Downloader) *testRoot {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	settings := config.NewSettings(app)
	settings.SetLanguage(LanguageEnglish)
	settings.SetOutputPath(t.TempDir())

	store := &fakeHistory{}
	var runner *download.Runner
	if downloader != nil {
		runner = download.NewRunner(downloader, nil, store)
	}

	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	root := NewRootUI(window, settings, Services{
		Info:    info,
		Runner:  runner,
		History: store,
	})
	return &testRoot{RootUI: root, settings: settings, history: store, runner: runner}
}

// fetch applies a fetch result the way the background fetch does
func (r *testRoot) fetch(result *platform.FetchResult, err error) {
	r.downloaderTab.onFetched(r.downloaderTab.fetchSeq, result, err)
}

func TestRootUI_InitialState(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, nil)

	if r.window.Title() != "AV (Video Downloader)" {
		t.Errorf("Expected window title %q, got %q", "AV (Video Downloader)", r.window.Title())
	}
	if len(r.tabs.Items) != 4 {
		t.Fatalf("Expected 4 tabs, got %d", len(r.tabs.Items))
	}
	if r.progress.StatusText() != "Welcome! Drop a URL to begin." {
		t.Errorf("Unexpected initial status %q", r.progress.StatusText())
	}
	if !r.downloaderTab.downloadNowBtn.Disabled() {
		t.Error("Download Now should be disabled before a fetch")
	}
	if r.progress.IsStopEnabled() {
		t.Error("Stop should be disabled while idle")
	}
}

func TestRootUI_FetchSingleVideo(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, nil)
	r.fetch(singleResult("abc", "Test Video"), nil)

	tab := r.downloaderTab
	if !tab.HasInfo() {
		t.Fatal("Expected fetched info to be shown")
	}
	if r.progress.StatusText() != "Video info fetched successfully!" {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
	if tab.titleLabel.Text != "Title: Test Video" {
		t.Errorf("Unexpected title %q", tab.titleLabel.Text)
	}
	if tab.durationLabel.Text != "Duration: 2m 5s" {
		t.Errorf("Unexpected duration %q", tab.durationLabel.Text)
	}
	if len(tab.qualitySelect.Options) != 2 || tab.qualitySelect.Selected != "1080p" {
		t.Errorf("Expected qualities [1080p 720p] with 1080p selected, got %v / %q", tab.qualitySelect.Options, tab.qualitySelect.Selected)
	}
	if tab.sizeLabel.Text != "Estimated File Size: 1.07 KB" {
		t.Errorf("Unexpected size %q", tab.sizeLabel.Text)
	}

	tab.qualitySelect.SetSelected("720p")
	if tab.sizeLabel.Text != "Estimated File Size: 600.0 B" {
		t.Errorf("Unexpected size after quality change %q", tab.sizeLabel.Text)
	}

	tab.formatSelect.SetSelected(model.FormatAudioMP3.Label())
	if tab.qualitySelect.Visible() {
		t.Error("Quality select should be hidden for audio formats")
	}
	if tab.sizeLabel.Text != "Estimated File Size: 100.0 B" {
		t.Errorf("Unexpected audio size %q", tab.sizeLabel.Text)
	}
	if tab.downloadNowBtn.Disabled() {
		t.Error("Download Now should be enabled after a fetch")
	}
	if tab.playlist.Container().Visible() {
		t.Error("Playlist checklist should be hidden for a single video")
	}
}

func TestRootUI_FetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"live", platform.ErrLiveStream, "Live streams cannot be downloaded."},
		{"empty playlist", platform.ErrEmptyPlaylist, "Playlist contains no valid videos."},
		{"other", errors.New("boom"), "Error fetching info: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRoot(t, &fakeInfo{}, nil)
			r.fetch(nil, tt.err)

			if r.progress.StatusText() != tt.expected {
				t.Errorf("Expected status %q, got %q", tt.expected, r.progress.StatusText())
			}
			if r.downloaderTab.HasInfo() {
				t.Error("No info should be shown after an error")
			}
			if r.downloaderTab.fetchBtn.Disabled() {
				t.Error("Fetch should be enabled again after an error")
			}
		})
	}
}

func TestRootUI_FetchURLValidation(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, nil)

	r.downloaderTab.Fetch("   ")
	if r.progress.StatusText() != "Please enter a URL." {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}

	r.downloaderTab.Fetch("not a url")
	if r.downloaderTab.fetching {
		t.Error("Invalid URL should not start a fetch")
	}
}

func TestRootUI_FetchPlaylist(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, nil)

	first := testVideo("a", "First")
	result := &platform.FetchResult{
		Preview: first,
		Items: []*model.VideoInfo{
			first,
			{ID: "b", Title: "Second", URL: "https://www.youtube.com/watch?v=b", Type: model.InfoTypeURL},
			{ID: "c", Title: "Third", URL: "https://www.youtube.com/watch?v=c", Type: model.InfoTypeURL},
		},
		IsPlaylist:    true,
		PlaylistTitle: "My List",
	}
	r.fetch(result, nil)

	if r.progress.StatusText() != "Playlist fetched: 3 videos." {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
	if !r.downloaderTab.playlist.Container().Visible() {
		t.Fatal("Playlist checklist should be visible")
	}

	r.downloaderTab.playlist.SetChecked(1, false)
	test.Tap(r.downloaderTab.addQueueBtn)

	rows := r.queueTab.Rows()
	if len(rows) != 2 {
		t.Fatalf("Expected 2 queued items, got %d", len(rows))
	}
	if rows[0].Info.ID != "a" || rows[1].Info.ID != "c" {
		t.Errorf("Expected items a and c, got %s and %s", rows[0].Info.ID, rows[1].Info.ID)
	}
	if r.tabs.SelectedIndex() != TabQueue {
		t.Errorf("Expected queue tab to be selected, got %d", r.tabs.SelectedIndex())
	}
	if r.progress.StatusText() != "Added 2 item(s) to the queue." {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
}

func TestRootUI_AddToQueueStampsSelection(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, nil)
	r.fetch(singleResult("abc", "Test Video"), nil)

	r.downloaderTab.qualitySelect.SetSelected("720p")
	test.Tap(r.downloaderTab.addQueueBtn)

	r.downloaderTab.formatSelect.SetSelected(model.FormatAudioM4A.Label())
	test.Tap(r.downloaderTab.addQueueBtn)

	rows := r.queueTab.Rows()
	if len(rows) != 2 {
		t.Fatalf("Expected 2 queued items, got %d", len(rows))
	}
	if got := queueCellText(rows[0], QueueColumnQuality); got != "720p" {
		t.Errorf("Expected quality 720p, got %q", got)
	}
	if got := queueCellText(rows[0], QueueColumnFormat); got != "Video (MP4)" {
		t.Errorf("Expected format Video (MP4), got %q", got)
	}
	if got := queueCellText(rows[1], QueueColumnQuality); got != model.QualityAudio {
		t.Errorf("Expected quality Audio, got %q", got)
	}
	if got := queueCellText(rows[1], QueueColumnTitle); got != "Test Video" {
		t.Errorf("Expected title Test Video, got %q", got)
	}
}

func TestRootUI_StartQueueErrors(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, &fakeDownloader{})

	test.Tap(r.queueTab.startBtn)
	if r.progress.StatusText() != "Download queue is empty." {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}

	r.settings.SetOutputPath("")
	r.fetch(singleResult("abc", "Test Video"), nil)
	test.Tap(r.downloaderTab.addQueueBtn)
	test.Tap(r.queueTab.startBtn)

	if r.progress.StatusText() != "Please set a default download folder in Settings." {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
	if r.tabs.SelectedIndex() != TabSettings {
		t.Errorf("Expected settings tab to be selected, got %d", r.tabs.SelectedIndex())
	}
	if r.progress.IsStopEnabled() {
		t.Error("Stop should stay disabled when nothing started")
	}
	if r.queue.Len() != 1 {
		t.Errorf("Queue should be untouched, got %d items", r.queue.Len())
	}
}

func TestRootUI_DownloadNow(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, &fakeDownloader{})
	r.fetch(singleResult("abc", "Test Video"), nil)

	test.Tap(r.downloaderTab.downloadNowBtn)
	r.runner.Wait()

	if r.progress.StatusText() != "All downloads completed!" {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
	if !r.progress.IsOpenFolderVisible() {
		t.Error("Open Download Folder should be shown after all downloads finish")
	}
	if r.progress.IsStopEnabled() {
		t.Error("Stop should be disabled after finishing")
	}
	if r.queue.Len() != 0 || len(r.queueTab.Rows()) != 0 {
		t.Error("Direct download should not touch the queue")
	}

	entries := r.historyTab.Entries()
	if len(entries) != 1 || entries[0].Title != "Test Video" {
		t.Errorf("Expected one history entry for Test Video, got %+v", entries)
	}
	if r.downloaderTab.downloadNowBtn.Disabled() {
		t.Error("Download Now should be enabled again")
	}
}

func TestRootUI_StopAndClearQueue(t *testing.T) {
	dl := &fakeDownloader{started: make(chan string, 4), block: make(chan struct{})}
	r := newTestRoot(t, &fakeInfo{}, dl)

	r.queue.Add(download.NewItems([]*model.VideoInfo{testVideo("a", "A"), testVideo("b", "B")}, "720p", model.FormatVideoMP4)...)
	r.queueTab.Refresh()

	test.Tap(r.queueTab.startBtn)
	<-dl.started

	if !r.progress.IsStopEnabled() {
		t.Error("Stop should be enabled while downloading")
	}

	r.onClearQueue()
	if r.queue.Len() != 1 {
		t.Errorf("Clear Queue should be ignored while downloading, got %d items", r.queue.Len())
	}

	r.runner.Stop()
	r.runner.Wait()

	if r.queue.Len() != 0 {
		t.Errorf("Stop should clear the queue, got %d items", r.queue.Len())
	}
	if r.progress.StatusText() != "Download process stopped." {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
	if r.progress.IsStopEnabled() {
		t.Error("Stop should be disabled after stopping")
	}
	if len(r.historyTab.Entries()) != 0 {
		t.Error("Stopped downloads should not be recorded")
	}
}

func TestRootUI_ClearHistory(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, nil)
	r.historyTab.SetEntries([]model.HistoryEntry{{Title: "A", URL: "u", Date: "d"}})

	test.Tap(r.historyTab.clearBtn)

	if !r.history.cleared {
		t.Error("Expected the store to be cleared")
	}
	if len(r.historyTab.Entries()) != 0 {
		t.Error("Expected the table to be empty")
	}
	if r.progress.StatusText() != "History cleared." {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
}

func TestRootUI_LanguageChange(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, nil)

	r.settingsTab.languageSelect.SetSelected("Русский")
	test.Tap(r.settingsTab.saveBtn)

	if r.settings.GetLanguage() != "ru" {
		t.Errorf("Expected language ru, got %s", r.settings.GetLanguage())
	}
	if r.tabs.Items[TabQueue].Text != "Очередь загрузок" {
		t.Errorf("Expected translated tab title, got %q", r.tabs.Items[TabQueue].Text)
	}
	if r.progress.StatusText() != r.localization.GetText(KeyStatusSettingsSaved) {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
}

func TestRootUI_OutputFolderSurvivesSettingsSave(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, nil)
	picked := filepath.Join(t.TempDir(), "picked")

	r.downloaderTab.SetOutputFolder(picked)
	if r.settingsTab.folderEntry.Text != picked {
		t.Errorf("Settings form should show the picked folder, got %q", r.settingsTab.folderEntry.Text)
	}

	r.settingsTab.templateEntry.SetText("%(title)s.%(ext)s")
	test.Tap(r.settingsTab.saveBtn)

	if got := r.settings.GetOutputPath(); got != picked {
		t.Errorf("Saving another setting reverted the output folder to %q", got)
	}
	if got := r.settings.GetFilenameTemplate(); got != "%(title)s.%(ext)s" {
		t.Errorf("Expected the new template to be stored, got %q", got)
	}
}

func TestRootUI_ClearInfoResetsProgressPanel(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, &fakeDownloader{})
	r.fetch(singleResult("abc", "Test Video"), nil)

	test.Tap(r.downloaderTab.downloadNowBtn)
	r.runner.Wait()
	if !r.progress.IsOpenFolderVisible() {
		t.Fatal("Open Download Folder should be shown after the download")
	}

	test.Tap(r.downloaderTab.clearInfoBtn)

	if r.progress.IsOpenFolderVisible() {
		t.Error("Clear Info should hide Open Download Folder")
	}
	if r.progress.progressBar.Value != 0 {
		t.Errorf("Clear Info should reset the progress bar, got %v", r.progress.progressBar.Value)
	}
	if r.downloaderTab.HasInfo() {
		t.Error("Clear Info should forget the fetched info")
	}
}

func TestRootUI_NothingSelectedInPlaylist(t *testing.T) {
	r := newTestRoot(t, &fakeInfo{}, &fakeDownloader{})

	first := testVideo("a", "First")
	r.fetch(&platform.FetchResult{
		Preview:       first,
		Items:         []*model.VideoInfo{first, testVideo("b", "Second")},
		IsPlaylist:    true,
		PlaylistTitle: "My List",
	}, nil)
	r.downloaderTab.playlist.SetAllChecked(false)

	test.Tap(r.downloaderTab.downloadNowBtn)
	if r.progress.StatusText() != "No items selected to download." {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
	if r.runner.IsRunning() {
		t.Error("Nothing should be downloading")
	}

	test.Tap(r.downloaderTab.addQueueBtn)
	if r.progress.StatusText() != "No items selected to add." {
		t.Errorf("Unexpected status %q", r.progress.StatusText())
	}
	if r.queue.Len() != 0 {
		t.Errorf("Expected an empty queue, got %d items", r.queue.Len())
	}
}
