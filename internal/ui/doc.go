package ui

// Package ui contains the Fyne-based desktop user interface: the downloader,
// queue, history and settings tabs plus the current-download panel. Background
// results reach widgets through fyne.Do. All UI strings are localized via
// Localization.
