package ui

import (
	"errors"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/model"
)

// SettingsTab edits the persisted settings
type SettingsTab struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization

	setStatus func(key string, args ...any)
	onSaved   func(languageChanged bool)

	// languageCodes maps select labels back to language codes
	languageCodes map[string]string

	// UI components
	content            fyne.CanvasObject
	folderLabel        *widget.Label
	folderEntry        *widget.Entry
	browseBtn          *widget.Button
	templateLabel      *widget.Label
	templateEntry      *widget.Entry
	rateLimitLabel     *widget.Label
	rateLimitEntry     *widget.Entry
	interfaceLabel     *widget.Label
	languageLabel      *widget.Label
	languageSelect     *widget.Select
	defaultFormatLabel *widget.Label
	formatSelect       *widget.Select
	openFolderCheck    *widget.Check
	saveBtn            *widget.Button
}

// NewSettingsTab creates the settings page
func NewSettingsTab(window fyne.Window, settings *config.Settings, localization *Localization) *SettingsTab {
	t := &SettingsTab{
		window:        window,
		settings:      settings,
		localization:  localization,
		setStatus:     func(string, ...any) {},
		languageCodes: make(map[string]string),
	}
	t.createUI()
	t.Load()
	return t
}

// SetHooks wires the tab to the status line and the language refresh
func (t *SettingsTab) SetHooks(setStatus func(key string, args ...any), onSaved func(languageChanged bool)) {
	if setStatus != nil {
		t.setStatus = setStatus
	}
	t.onSaved = onSaved
}

// createUI creates the settings form
func (t *SettingsTab) createUI() {
	t.folderLabel = widget.NewLabel(t.localization.GetText(KeyDefaultFolder))
	t.folderEntry = widget.NewEntry()
	t.browseBtn = widget.NewButton(t.localization.GetText(KeyBrowse), t.onBrowseDirectory)
	folderRow := container.NewBorder(nil, nil, nil, t.browseBtn, t.folderEntry)

	t.templateLabel = widget.NewLabel(t.localization.GetText(KeyFilenameTemplate))
	t.templateEntry = widget.NewEntry()
	t.templateEntry.SetPlaceHolder(config.DefaultFilenameTemplate)

	t.rateLimitLabel = widget.NewLabel(t.localization.GetText(KeySpeedLimit))
	t.rateLimitEntry = widget.NewEntry()
	t.rateLimitEntry.Validator = config.ValidateRateLimit

	// Language selection, sorted by code for a stable order
	languageLabels := t.settings.GetLanguageOptions()
	codes := make([]string, 0, len(languageLabels))
	for code := range languageLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	options := make([]string, 0, len(codes))
	for _, code := range codes {
		label := languageLabels[code]
		t.languageCodes[label] = code
		options = append(options, label)
	}
	t.languageLabel = widget.NewLabel(t.localization.GetText(KeyLanguage))
	t.languageSelect = widget.NewSelect(options, nil)

	formats := model.AllOutputFormats()
	formatLabels := make([]string, 0, len(formats))
	for _, f := range formats {
		formatLabels = append(formatLabels, f.Label())
	}
	t.defaultFormatLabel = widget.NewLabel(t.localization.GetText(KeyDefaultFormat))
	t.formatSelect = widget.NewSelect(formatLabels, nil)

	t.openFolderCheck = widget.NewCheck(t.localization.GetText(KeyOpenFolderOnFinish), nil)

	t.saveBtn = widget.NewButton(t.localization.GetText(KeySaveSettings), t.onSave)
	t.saveBtn.Importance = widget.HighImportance

	t.interfaceLabel = widget.NewLabel(t.localization.GetText(KeyInterfaceSettings))
	t.interfaceLabel.TextStyle = fyne.TextStyle{Bold: true}

	form := container.NewVBox(
		t.folderLabel,
		folderRow,
		t.templateLabel,
		t.templateEntry,
		t.rateLimitLabel,
		t.rateLimitEntry,
		widget.NewSeparator(),
		t.interfaceLabel,
		t.languageLabel,
		t.languageSelect,
		t.defaultFormatLabel,
		t.formatSelect,
		t.openFolderCheck,
	)

	t.content = container.NewBorder(nil, container.NewHBox(t.saveBtn), nil, nil, container.NewVScroll(form))
}

// Load copies the stored settings into the form
func (t *SettingsTab) Load() {
	t.folderEntry.SetText(t.settings.GetOutputPath())
	t.templateEntry.SetText(t.settings.GetFilenameTemplate())
	t.rateLimitEntry.SetText(t.settings.GetRateLimit())

	current := t.settings.GetLanguage()
	for label, code := range t.languageCodes {
		if code == current {
			t.languageSelect.SetSelected(label)
			break
		}
	}
	t.formatSelect.SetSelected(t.settings.GetDefaultFormat().Label())
	t.openFolderCheck.SetChecked(t.settings.GetOpenFolderOnFinish())
}

// SetFolder shows a folder chosen elsewhere without touching the other unsaved fields
func (t *SettingsTab) SetFolder(dir string) {
	t.folderEntry.SetText(dir)
}

// onBrowseDirectory handles directory browsing
func (t *SettingsTab) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		t.folderEntry.SetText(uri.Path())
	}, t.window)
}

// onSave validates and stores the form. Nothing is stored when the speed limit is invalid.
func (t *SettingsTab) onSave() {
	if err := config.ValidateRateLimit(strings.TrimSpace(t.rateLimitEntry.Text)); err != nil {
		if errors.Is(err, config.ErrInvalidRateLimit) {
			t.setStatus(KeyStatusInvalidRateLimit)
		}
		return
	}

	t.settings.SetOutputPath(t.folderEntry.Text)
	t.settings.SetFilenameTemplate(t.templateEntry.Text)
	if err := t.settings.SetRateLimit(t.rateLimitEntry.Text); err != nil {
		t.setStatus(KeyStatusInvalidRateLimit)
		return
	}

	if format, ok := model.ParseOutputFormat(t.formatSelect.Selected); ok {
		t.settings.SetDefaultFormat(format)
	}
	t.settings.SetOpenFolderOnFinish(t.openFolderCheck.Checked)

	languageChanged := false
	if code, ok := t.languageCodes[t.languageSelect.Selected]; ok && code != t.settings.GetLanguage() {
		t.settings.SetLanguage(code)
		languageChanged = true
	}

	// Reload to show normalized values such as the restored default template
	t.Load()
	if t.onSaved != nil {
		t.onSaved(languageChanged)
	}
	t.setStatus(KeyStatusSettingsSaved)
}

// Content returns the tab body
func (t *SettingsTab) Content() fyne.CanvasObject {
	return t.content
}

// RefreshTexts re-renders texts in the current language
func (t *SettingsTab) RefreshTexts() {
	t.folderLabel.SetText(t.localization.GetText(KeyDefaultFolder))
	t.browseBtn.SetText(t.localization.GetText(KeyBrowse))
	t.templateLabel.SetText(t.localization.GetText(KeyFilenameTemplate))
	t.rateLimitLabel.SetText(t.localization.GetText(KeySpeedLimit))
	t.interfaceLabel.SetText(t.localization.GetText(KeyInterfaceSettings))
	t.languageLabel.SetText(t.localization.GetText(KeyLanguage))
	t.defaultFormatLabel.SetText(t.localization.GetText(KeyDefaultFormat))
	t.openFolderCheck.Text = t.localization.GetText(KeyOpenFolderOnFinish)
	t.openFolderCheck.Refresh()
	t.saveBtn.SetText(t.localization.GetText(KeySaveSettings))
}
