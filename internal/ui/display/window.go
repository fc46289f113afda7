package display

import (
	"workouttimer/internal/ui/animation"

	"fyne.io/fyne/v2"
)

// WindowConfig defines pop-out window behaviour.
type WindowConfig struct {
	Fullscreen bool
	Title      string
}

// Window is an undecorated window showing a second Display, meant to be
// read from across the room.
type Window struct {
	window  fyne.Window
	config  WindowConfig
	display *Display
	visible bool
	onClose func()
}

const (
	windowWidthFraction  = float32(0.4)
	windowHeightFraction = float32(0.45)
	defaultScreenWidth   = float32(1920)
	defaultScreenHeight  = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// NewWindow creates the pop-out window. It starts hidden.
func NewWindow(app fyne.App, config WindowConfig, animationConfig animation.Config) *Window {
	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	popout := &Window{
		window:  window,
		config:  config,
		display: New(animationConfig),
	}
	window.SetContent(popout.display.Object())
	window.SetCloseIntercept(popout.Hide)
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name == fyne.KeyEscape {
			popout.Hide()
		}
	})
	return popout
}

// Display returns the panel shown in the window.
func (popout *Window) Display() *Display {
	return popout.display
}

// Visible reports whether the window is shown.
func (popout *Window) Visible() bool {
	return popout.visible
}

// SetOnClose sets a handler called when the user hides the window.
func (popout *Window) SetOnClose(handler func()) {
	popout.onClose = handler
}

// Show displays the window.
func (popout *Window) Show() {
	popout.visible = true
	popout.applyWindowMode()
	popout.window.Show()
	popout.window.RequestFocus()
}

// Hide closes the window and stops its animations.
func (popout *Window) Hide() {
	wasVisible := popout.visible
	popout.visible = false
	popout.display.Stop()
	if popout.config.Fullscreen {
		popout.window.SetFullScreen(false)
	}
	popout.window.Hide()
	if wasVisible && popout.onClose != nil {
		popout.onClose()
	}
}

// Toggle shows a hidden window and hides a visible one.
func (popout *Window) Toggle() {
	if popout.visible {
		popout.Hide()
		return
	}
	popout.Show()
}

// UpdateConfig changes the window mode.
func (popout *Window) UpdateConfig(config WindowConfig) {
	popout.config = config
	if popout.visible {
		popout.applyWindowMode()
	}
}

func (popout *Window) applyWindowMode() {
	if popout.config.Fullscreen {
		popout.window.SetFullScreen(true)
		return
	}
	popout.window.SetFullScreen(false)
	popout.resizeToScreenFraction()
}

func (popout *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := popout.window.Canvas().Size()
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * windowWidthFraction
	height := screenSize.Height * windowHeightFraction
	minSize := popout.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	popout.window.Resize(fyne.NewSize(width, height))
	popout.window.CenterOnScreen()
}
