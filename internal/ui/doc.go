// Package ui contains the Fyne desktop front-end: a fixed-size window with
// one URL entry and one download button. Downloads run through the same
// service the CLI uses. All UI strings are localized via Localization.
package ui
