package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/areavii/av-downloader/internal/model"
	"github.com/areavii/av-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputPath         = "output_path"
	KeyFilenameTemplate   = "filename_template"
	KeyRateLimit          = "rate_limit"
	KeyLanguage           = "app_language"
	KeyDefaultFormat      = "default_format"
	KeyOpenFolderOnFinish = "open_folder_on_finish"
)

// Default values
const (
	DefaultFilenameTemplate   = "%(title)s [%(id)s].%(ext)s"
	DefaultRateLimit          = ""
	DefaultLanguage           = "system"
	DefaultFormat             = model.FormatVideoMP4
	DefaultOpenFolderOnFinish = false
)

// ErrInvalidRateLimit is returned for speed limits yt-dlp would not accept
var ErrInvalidRateLimit = errors.New("invalid speed limit")

// rateLimitPattern accepts values like 500K, 2M, 1.5G or a plain byte count
var rateLimitPattern = regexp.MustCompile(`(?i)^\d+(\.\d+)?[KMG]?$`)

// Snapshot is a point-in-time copy of the settings handed to background workers
type Snapshot struct {
	OutputPath         string             `yaml:"output_path"`
	FilenameTemplate   string             `yaml:"filename_template"`
	RateLimit          string             `yaml:"rate_limit"`
	Language           string             `yaml:"app_language"`
	DefaultFormat      model.OutputFormat `yaml:"default_format"`
	OpenFolderOnFinish bool               `yaml:"open_folder_on_finish"`
}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// unsetPath marks an output path that was never stored
const unsetPath = "\x00"

// GetOutputPath returns the download folder. The Downloads directory is stored
// on first use; an explicitly cleared value stays empty.
func (s *Settings) GetOutputPath() string {
	dir := s.app.Preferences().StringWithFallback(KeyOutputPath, unsetPath)
	if dir != unsetPath {
		return dir
	}

	defaultDir := defaultOutputPath()
	if defaultDir != "" {
		s.SetOutputPath(defaultDir)
	}
	return defaultDir
}

func defaultOutputPath() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return ""
	}
	return dir
}

// SetOutputPath sets the download folder
func (s *Settings) SetOutputPath(dir string) {
	s.app.Preferences().SetString(KeyOutputPath, strings.TrimSpace(dir))
}

// GetFilenameTemplate returns the yt-dlp output template
func (s *Settings) GetFilenameTemplate() string {
	template := s.app.Preferences().String(KeyFilenameTemplate)
	if template == "" {
		s.SetFilenameTemplate(DefaultFilenameTemplate)
		return DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the output template, restoring the default when empty
func (s *Settings) SetFilenameTemplate(template string) {
	template = strings.TrimSpace(template)
	if template == "" {
		template = DefaultFilenameTemplate
	}
	s.app.Preferences().SetString(KeyFilenameTemplate, template)
}

// GetRateLimit returns the speed limit, empty for unlimited
func (s *Settings) GetRateLimit() string {
	return s.app.Preferences().StringWithFallback(KeyRateLimit, DefaultRateLimit)
}

// SetRateLimit validates and stores the speed limit
func (s *Settings) SetRateLimit(limit string) error {
	limit = strings.TrimSpace(limit)
	if err := ValidateRateLimit(limit); err != nil {
		return err
	}
	s.app.Preferences().SetString(KeyRateLimit, limit)
	return nil
}

// ValidateRateLimit checks a speed limit such as "500K" or "2M"; empty means unlimited
func ValidateRateLimit(limit string) error {
	if limit == "" {
		return nil
	}
	if !rateLimitPattern.MatchString(limit) {
		return fmt.Errorf("%w: %q", ErrInvalidRateLimit, limit)
	}
	return nil
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetDefaultFormat returns the format preselected in the downloader tab
func (s *Settings) GetDefaultFormat() model.OutputFormat {
	stored := s.app.Preferences().String(KeyDefaultFormat)
	if format, ok := model.ParseOutputFormat(stored); ok {
		return format
	}
	s.SetDefaultFormat(DefaultFormat)
	return DefaultFormat
}

// SetDefaultFormat sets the preselected format
func (s *Settings) SetDefaultFormat(format model.OutputFormat) {
	s.app.Preferences().SetString(KeyDefaultFormat, string(format))
}

// GetOpenFolderOnFinish returns whether the output folder opens after a queue run
func (s *Settings) GetOpenFolderOnFinish() bool {
	return s.app.Preferences().BoolWithFallback(KeyOpenFolderOnFinish, DefaultOpenFolderOnFinish)
}

// SetOpenFolderOnFinish sets whether the output folder opens after a queue run
func (s *Settings) SetOpenFolderOnFinish(open bool) {
	s.app.Preferences().SetBool(KeyOpenFolderOnFinish, open)
}

// View copies the current settings like Snapshot but leaves unset keys unset
func (s *Settings) View() Snapshot {
	prefs := s.app.Preferences()

	view := Snapshot{
		OutputPath:         prefs.StringWithFallback(KeyOutputPath, unsetPath),
		FilenameTemplate:   prefs.StringWithFallback(KeyFilenameTemplate, DefaultFilenameTemplate),
		RateLimit:          prefs.StringWithFallback(KeyRateLimit, DefaultRateLimit),
		Language:           prefs.StringWithFallback(KeyLanguage, DefaultLanguage),
		DefaultFormat:      DefaultFormat,
		OpenFolderOnFinish: prefs.BoolWithFallback(KeyOpenFolderOnFinish, DefaultOpenFolderOnFinish),
	}
	if view.OutputPath == unsetPath {
		view.OutputPath = defaultOutputPath()
	}
	if view.FilenameTemplate == "" {
		view.FilenameTemplate = DefaultFilenameTemplate
	}
	if view.Language == "" {
		view.Language = DefaultLanguage
	}
	if format, ok := model.ParseOutputFormat(prefs.String(KeyDefaultFormat)); ok {
		view.DefaultFormat = format
	}
	return view
}

// Snapshot copies the current settings
func (s *Settings) Snapshot() Snapshot {
	return Snapshot{
		OutputPath:         s.GetOutputPath(),
		FilenameTemplate:   s.GetFilenameTemplate(),
		RateLimit:          s.GetRateLimit(),
		Language:           s.GetLanguage(),
		DefaultFormat:      s.GetDefaultFormat(),
		OpenFolderOnFinish: s.GetOpenFolderOnFinish(),
	}
}
