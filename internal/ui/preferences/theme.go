package preferences

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ScaledTheme wraps the default theme, forcing a variant and scaling sizes.
type ScaledTheme struct {
	fyne.Theme
	variant *fyne.ThemeVariant
	scale   float32
}

// NewTheme creates the theme for settings. The system theme keeps the
// variant chosen by the OS.
func NewTheme(settings Settings) fyne.Theme {
	scaled := &ScaledTheme{Theme: theme.DefaultTheme(), scale: float32(settings.FontScale)}
	if scaled.scale < MinFontScale || scaled.scale > MaxFontScale {
		scaled.scale = 1
	}
	switch settings.Theme {
	case ThemeDark:
		variant := theme.VariantDark
		scaled.variant = &variant
	case ThemeLight:
		variant := theme.VariantLight
		scaled.variant = &variant
	}
	return scaled
}

// Color returns the colour for name in the forced variant.
func (t *ScaledTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.variant != nil {
		variant = *t.variant
	}
	return t.Theme.Color(name, variant)
}

// Size returns the default size multiplied by the font scale.
func (t *ScaledTheme) Size(name fyne.ThemeSizeName) float32 {
	return t.Theme.Size(name) * t.scale
}
