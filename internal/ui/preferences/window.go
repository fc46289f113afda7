package preferences

import (
	"path/filepath"
	"strings"

	"workouttimer/internal/i18n"
	"workouttimer/internal/sound"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines preferences window handlers.
type Callbacks struct {
	OnSave func(Settings)
	// OnTest plays cue with the given file, or the built-in tone when path
	// is empty, at volume.
	OnTest func(cue sound.Cue, path string, volume float64)
}

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	callbacks Callbacks
	theme     *widget.RadioGroup
	fontScale *widget.Slider
	volume    *widget.Slider
	sounds    map[sound.Cue]*widget.Entry
	testers   map[sound.Cue]*widget.Button
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, callbacks Callbacks) *Window {
	window := app.NewWindow(i18n.T("Preferences"))

	prefs := &Window{
		window:    window,
		settings:  settings.Clone(),
		callbacks: callbacks,
		sounds:    make(map[sound.Cue]*widget.Entry, len(sound.Cues)),
		testers:   make(map[sound.Cue]*widget.Button, len(sound.Cues)),
	}

	prefs.theme = widget.NewRadioGroup([]string{i18n.T("Dark"), i18n.T("Light"), i18n.T("System")}, nil)
	prefs.theme.Horizontal = true
	prefs.theme.Required = true

	prefs.fontScale = widget.NewSlider(MinFontScale, MaxFontScale)
	prefs.fontScale.Step = 0.05

	prefs.volume = widget.NewSlider(0, 1)
	prefs.volume.Step = 0.05

	general := widget.NewForm(
		widget.NewFormItem(i18n.T("Theme"), prefs.theme),
		widget.NewFormItem(i18n.T("Font scale"), prefs.fontScale),
		widget.NewFormItem(i18n.T("Volume"), prefs.volume),
	)

	soundRows := widget.NewForm()
	for _, cue := range sound.Cues {
		entry := widget.NewEntry()
		entry.SetPlaceHolder(i18n.T("Built-in tone"))
		prefs.sounds[cue] = entry
		soundRows.Append(cueLabel(cue), prefs.soundRow(cue, entry))
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Preferences"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		general,
		widget.NewLabelWithStyle(i18n.T("Sounds"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		soundRows,
	)

	saveButton := widget.NewButton(i18n.T("Save"), prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton(i18n.T("Close"), prefs.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.SetCloseIntercept(prefs.Hide)
	window.Resize(fyne.NewSize(560, 520))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Hide closes the window without saving.
func (prefs *Window) Hide() {
	prefs.window.Hide()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings.Clone()
	prefs.theme.SetSelected(themeLabel(settings.Theme))
	prefs.fontScale.SetValue(settings.FontScale)
	prefs.volume.SetValue(settings.Volume)
	for _, cue := range sound.Cues {
		prefs.sounds[cue].SetText(settings.Sounds[cue])
	}
}

func (prefs *Window) soundRow(cue sound.Cue, entry *widget.Entry) fyne.CanvasObject {
	choose := widget.NewButton(i18n.T("Choose"), func() {
		picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			entry.SetText(reader.URI().Path())
		}, prefs.window)
		picker.SetFilter(storage.NewExtensionFileFilter([]string{".wav", ".ogg"}))
		picker.Show()
	})
	tester := widget.NewButton(i18n.T("Test"), func() {
		if prefs.callbacks.OnTest != nil {
			prefs.callbacks.OnTest(cue, strings.TrimSpace(entry.Text), prefs.volume.Value)
		}
	})
	prefs.testers[cue] = tester
	clearButton := widget.NewButton(i18n.T("Clear"), func() {
		entry.SetText("")
	})
	return container.NewBorder(nil, nil, nil, container.NewHBox(choose, tester, clearButton), entry)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings.Clone()
	settings.Theme = themeFromLabel(prefs.theme.Selected, settings.Theme)
	settings.FontScale = prefs.fontScale.Value
	settings.Volume = prefs.volume.Value

	settings.Sounds = make(map[sound.Cue]string, len(prefs.sounds))
	for cue, entry := range prefs.sounds {
		if path := strings.TrimSpace(entry.Text); path != "" {
			settings.Sounds[cue] = filepath.Clean(path)
		}
	}

	prefs.settings = settings
	if prefs.callbacks.OnSave != nil {
		prefs.callbacks.OnSave(settings.Clone())
	}
	prefs.window.Hide()
}

func themeLabel(theme Theme) string {
	switch theme {
	case ThemeLight:
		return i18n.T("Light")
	case ThemeSystem:
		return i18n.T("System")
	default:
		return i18n.T("Dark")
	}
}

func themeFromLabel(label string, fallback Theme) Theme {
	for _, theme := range Themes {
		if themeLabel(theme) == label {
			return theme
		}
	}
	return fallback
}

func cueLabel(cue sound.Cue) string {
	switch cue {
	case sound.CuePrep:
		return i18n.T("Prep")
	case sound.CueWork:
		return i18n.T("Work")
	case sound.CueRest:
		return i18n.T("Rest")
	case sound.CueCooldown:
		return i18n.T("Cooldown")
	case sound.CueFinish:
		return i18n.T("Finish")
	default:
		return string(cue)
	}
}
