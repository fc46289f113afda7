package preferences

import (
	"workouttimer/internal/core/model"
	"workouttimer/internal/sound"
)

// Theme selects the colour scheme.
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// Themes lists the selectable themes.
var Themes = []Theme{ThemeDark, ThemeLight, ThemeSystem}

const (
	MinFontScale = 0.8
	MaxFontScale = 1.4
)

// Settings defines editable user preferences plus the last-used form values.
type Settings struct {
	Theme     Theme
	FontScale float64
	Volume    float64
	Sounds    map[sound.Cue]string

	LastMode   model.Mode
	Tabata     model.TabataConfig
	Boxing     model.BoxingConfig
	CustomText string
}

// DefaultSettings returns default settings for the workout timer.
func DefaultSettings() Settings {
	return Settings{
		Theme:      ThemeDark,
		FontScale:  1.0,
		Volume:     0.8,
		Sounds:     map[sound.Cue]string{},
		LastMode:   model.ModeTabata,
		Tabata:     model.DefaultTabata(),
		Boxing:     model.DefaultBoxing(),
		CustomText: model.DefaultCustomText,
	}
}

// SoundOptions converts settings to player options.
func (settings Settings) SoundOptions() sound.Options {
	files := make(map[sound.Cue]string, len(settings.Sounds))
	for cue, path := range settings.Sounds {
		files[cue] = path
	}
	return sound.Options{Volume: settings.Volume, Files: files}
}

// Clone returns a copy that shares no maps with settings.
func (settings Settings) Clone() Settings {
	clone := settings
	clone.Sounds = make(map[sound.Cue]string, len(settings.Sounds))
	for cue, path := range settings.Sounds {
		clone.Sounds[cue] = path
	}
	return clone
}

// ValidTheme reports whether theme is one of Themes.
func ValidTheme(theme Theme) bool {
	for _, known := range Themes {
		if theme == known {
			return true
		}
	}
	return false
}
