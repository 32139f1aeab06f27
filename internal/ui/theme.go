package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Palette
var (
	colorBackground = color.RGBA{R: 0x1e, G: 0x21, B: 0x24, A: 0xff}
	colorSurface    = color.RGBA{R: 0x28, G: 0x2b, B: 0x30, A: 0xff}
	colorAccent     = color.RGBA{R: 0x43, G: 0xb5, B: 0x81, A: 0xff}
	colorText       = color.RGBA{R: 0xb9, G: 0xbb, B: 0xbe, A: 0xff}
	colorHover      = color.RGBA{R: 0x36, G: 0x39, B: 0x3f, A: 0xff}
	colorError      = color.RGBA{R: 0xf0, G: 0x47, B: 0x47, A: 0xff}
)

// AppTheme is a compact dark theme with a green accent
type AppTheme struct{}

// NewAppTheme creates the application theme
func NewAppTheme() fyne.Theme {
	return &AppTheme{}
}

// Color returns theme colors. The palette is the same for both variants.
func (t *AppTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return colorBackground
	case theme.ColorNameInputBackground, theme.ColorNameButton, theme.ColorNameHeaderBackground:
		return colorSurface
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameSuccess, theme.ColorNameInputBorder:
		return colorAccent
	case theme.ColorNameForeground, theme.ColorNamePlaceHolder:
		return colorText
	case theme.ColorNameHover, theme.ColorNamePressed:
		return colorHover
	case theme.ColorNameError:
		return colorError
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 4
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
