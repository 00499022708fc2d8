package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppIcon returns the window and application icon
func AppIcon() fyne.Resource {
	return theme.MediaMusicIcon()
}
