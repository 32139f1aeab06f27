package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/areavii/av-downloader/internal/model"
)

// ProgressPanel is the "Current Download" card pinned under the tabs.
// All methods must run on the UI thread.
type ProgressPanel struct {
	localization *Localization

	card          *widget.Card
	speedLabel    *widget.Label
	etaLabel      *widget.Label
	percentLabel  *widget.Label
	statusLabel   *widget.Label
	progressBar   *widget.ProgressBar
	busyBar       *widget.ProgressBarInfinite
	stopBtn       *widget.Button
	openFolderBtn *widget.Button

	lastProgress model.Progress
	hasProgress  bool
	statusKey    string
	statusArgs   []any
}

// NewProgressPanel creates the panel with Stop disabled and Open Folder hidden
func NewProgressPanel(localization *Localization, onStop, onOpenFolder func()) *ProgressPanel {
	p := &ProgressPanel{localization: localization}

	p.speedLabel = widget.NewLabel("")
	p.etaLabel = widget.NewLabel("")
	p.percentLabel = widget.NewLabel("")
	p.statusLabel = widget.NewLabel("")
	p.statusLabel.Wrapping = fyne.TextWrapWord

	p.progressBar = widget.NewProgressBar()
	p.progressBar.Max = 100
	p.busyBar = widget.NewProgressBarInfinite()
	p.busyBar.Hide()

	p.stopBtn = widget.NewButton(localization.GetText(KeyStop), onStop)
	p.stopBtn.Importance = widget.DangerImportance
	p.stopBtn.Disable()

	p.openFolderBtn = widget.NewButton(localization.GetText(KeyOpenFolder), onOpenFolder)
	p.openFolderBtn.Hide()

	stats := container.NewGridWithColumns(3, p.speedLabel, p.etaLabel, p.percentLabel)
	bars := container.NewStack(p.progressBar, p.busyBar)
	buttons := container.NewHBox(p.stopBtn, p.openFolderBtn)

	p.card = widget.NewCard(localization.GetText(KeyCurrentDownload), "",
		container.NewVBox(stats, bars, container.NewBorder(nil, nil, nil, buttons, p.statusLabel)))

	p.ResetStats()
	p.SetStatus(KeyStatusWelcome)
	return p
}

// Container returns the panel widget
func (p *ProgressPanel) Container() fyne.CanvasObject {
	return p.card
}

// SetStatus shows a localized status message. The key is remembered so the
// message follows language changes.
func (p *ProgressPanel) SetStatus(key string, args ...any) {
	p.statusKey = key
	p.statusArgs = args
	p.statusLabel.SetText(p.localization.Format(key, args...))
}

// StatusText returns the text currently shown in the status label
func (p *ProgressPanel) StatusText() string {
	return p.statusLabel.Text
}

// ShowProgress updates the stats and bars. Post-processing switches to the
// indeterminate bar because yt-dlp reports no percentage for it.
func (p *ProgressPanel) ShowProgress(progress model.Progress) {
	p.lastProgress = progress
	p.hasProgress = true

	p.speedLabel.SetText(p.localization.Format(KeySpeed, progress.GetSpeedString()))
	p.etaLabel.SetText(p.localization.Format(KeyETA, progress.GetETAString()))

	if progress.Percent >= 0 {
		p.progressBar.SetValue(float64(progress.Percent))
		p.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, progress.Percent))
	}

	if progress.Stage == model.StagePostProcessing {
		p.progressBar.Hide()
		p.busyBar.Show()
		p.busyBar.Start()
		return
	}
	if p.busyBar.Running() {
		p.busyBar.Stop()
	}
	p.busyBar.Hide()
	p.progressBar.Show()
}

// ResetStats clears speed, ETA and the bar
func (p *ProgressPanel) ResetStats() {
	p.hasProgress = false
	p.lastProgress = model.Progress{}
	p.speedLabel.SetText(p.localization.Format(KeySpeed, model.NotAvailable))
	p.etaLabel.SetText(p.localization.Format(KeyETA, model.NotAvailable))
	p.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, 0))
	p.progressBar.SetValue(0)
	if p.busyBar.Running() {
		p.busyBar.Stop()
	}
	p.busyBar.Hide()
	p.progressBar.Show()
}

// SetRunning enables Stop while a download runs and hides Open Folder
func (p *ProgressPanel) SetRunning(running bool) {
	if running {
		p.stopBtn.Enable()
		p.openFolderBtn.Hide()
		return
	}
	p.stopBtn.Disable()
}

// ShowOpenFolder reveals the Open Download Folder button
func (p *ProgressPanel) ShowOpenFolder() {
	p.openFolderBtn.Show()
}

// HideOpenFolder hides the Open Download Folder button
func (p *ProgressPanel) HideOpenFolder() {
	p.openFolderBtn.Hide()
}

// IsStopEnabled reports whether the Stop button is clickable
func (p *ProgressPanel) IsStopEnabled() bool {
	return !p.stopBtn.Disabled()
}

// IsOpenFolderVisible reports whether the Open Download Folder button is shown
func (p *ProgressPanel) IsOpenFolderVisible() bool {
	return p.openFolderBtn.Visible()
}

// RefreshTexts re-renders every text in the current language
func (p *ProgressPanel) RefreshTexts() {
	p.card.SetTitle(p.localization.GetText(KeyCurrentDownload))
	p.stopBtn.SetText(p.localization.GetText(KeyStop))
	p.openFolderBtn.SetText(p.localization.GetText(KeyOpenFolder))
	if p.statusKey != "" {
		p.statusLabel.SetText(p.localization.Format(p.statusKey, p.statusArgs...))
	}
	if p.hasProgress {
		p.ShowProgress(p.lastProgress)
		return
	}
	p.speedLabel.SetText(p.localization.Format(KeySpeed, model.NotAvailable))
	p.etaLabel.SetText(p.localization.Format(KeyETA, model.NotAvailable))
}
