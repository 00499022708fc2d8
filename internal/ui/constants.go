package ui

import "fyne.io/fyne/v2"

// Window geometry
const (
	WindowWidth  float32 = 400
	WindowHeight float32 = 120
)

// WindowSize is the fixed main window size
var WindowSize = fyne.NewSize(WindowWidth, WindowHeight)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 420
	SettingsDialogHeight float32 = 380
)

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconMusic    = "🎵"
)

// Text fragments
const (
	ProgressLabelFormat = "%s %d%%"
)
