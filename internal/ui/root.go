package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytwav/internal/config"
	"github.com/ytget/ytwav/internal/logging"
	"github.com/ytget/ytwav/internal/model"
	"github.com/ytget/ytwav/internal/platform"
)

// Downloader runs one download request to completion
type Downloader interface {
	Download(ctx context.Context, req *model.DownloadRequest) model.DownloadOutcome
}

// DependencyChecker reports whether the transcoder is usable
type DependencyChecker interface {
	Available() error
}

// RootUI is the main window: a label, a URL entry and a download button
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	label        *widget.Label
	urlEntry     *widget.Entry
	downloadBtn  *widget.Button
	downloader   Downloader
	checker      DependencyChecker
	settings     *config.Settings
	localization *Localization
	log          *slog.Logger
	ctx          context.Context

	// busy is only touched on the UI goroutine
	busy bool

	// onFinished is called on the UI goroutine after a download ends
	onFinished func(model.DownloadOutcome)
}

// NewRootUI creates and initializes the main UI
func NewRootUI(ctx context.Context, app fyne.App, window fyne.Window, downloader Downloader, checker DependencyChecker) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		app:          app,
		window:       window,
		downloader:   downloader,
		checker:      checker,
		settings:     settings,
		localization: localization,
		log:          logging.FromContext(ctx),
		ctx:          ctx,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetIcon(AppIcon())
	window.Resize(WindowSize)
	window.SetFixedSize(true)
	window.CenterOnScreen()

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.label = widget.NewLabel(ui.localization.GetText(KeyPasteLink))
	ui.label.Alignment = fyne.TextAlignCenter

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("https://www.youtube.com/watch?v=...")
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.window.SetContent(container.NewVBox(
		ui.label,
		ui.urlEntry,
		container.NewCenter(ui.downloadBtn),
	))
	ui.window.Canvas().Focus(ui.urlEntry)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.label.SetText(ui.localization.GetText(KeyPasteLink))
	if !ui.busy {
		ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}

// CheckDependencies shows a fatal dialog and quits the app when ffmpeg is
// missing. It returns false in that case.
func (ui *RootUI) CheckDependencies() bool {
	err := ui.checker.Available()
	if err == nil {
		return true
	}

	ui.log.Error("ffmpeg check failed at startup", "error", err)
	d := dialog.NewInformation(
		ui.localization.GetText(KeyFFmpegTitle),
		ui.localization.GetText(KeyFFmpegMissing),
		ui.window,
	)
	d.SetOnClosed(ui.app.Quit)
	d.Show()
	return false
}

// onDownloadClick validates the entry and starts a download in the
// background; the button stays disabled until it finishes
func (ui *RootUI) onDownloadClick() {
	if ui.busy {
		return
	}

	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.showWarning(KeyNoLinkTitle, KeyNoLink)
		return
	}
	if !platform.IsValidYouTubeURL(urlText) {
		ui.showWarning(KeyInvalidURLTitle, KeyInvalidURL)
		return
	}

	req := ui.settings.Request(urlText)
	ui.log.Info("starting download", "url", urlText, "request", req.ID)

	ui.busy = true
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownloading))
	ui.downloadBtn.Disable()

	go func() {
		out := ui.downloader.Download(ui.ctx, req)
		fyne.Do(func() {
			ui.finishDownload(out)
		})
	}()
}

// SetProgress shows download progress on the button. Safe to call from
// any goroutine.
func (ui *RootUI) SetProgress(percent float64) {
	fyne.Do(func() {
		if !ui.busy {
			return
		}
		ui.downloadBtn.SetText(fmt.Sprintf(ProgressLabelFormat, ui.localization.GetText(KeyDownloading), int(percent)))
	})
}

// finishDownload restores the form and reports the outcome
func (ui *RootUI) finishDownload(out model.DownloadOutcome) {
	ui.busy = false
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.downloadBtn.Enable()

	if out.Success {
		location := filepath.Dir(out.OutputPath) + string(filepath.Separator)
		path := out.OutputPath
		dialog.ShowCustomConfirm(
			ui.localization.GetText(KeySuccessTitle),
			ui.localization.GetText(KeyShowFile),
			ui.localization.GetText(KeyClose),
			widget.NewLabel(fmt.Sprintf(ui.localization.GetText(KeySuccess), location)),
			func(show bool) {
				if !show {
					return
				}
				if err := platform.OpenFileInManager(path); err != nil {
					ui.log.Warn("could not open file manager", "path", path, "error", err)
				}
			},
			ui.window,
		)
		ui.urlEntry.SetText("")
	} else {
		dialog.ShowInformation(
			ui.localization.GetText(KeyFailureTitle),
			ui.localization.GetText(KeyFailure),
			ui.window,
		)
	}

	if ui.onFinished != nil {
		ui.onFinished(out)
	}
}

func (ui *RootUI) showWarning(titleKey, messageKey string) {
	dialog.ShowInformation(
		ui.localization.GetText(titleKey),
		ui.localization.GetText(messageKey),
		ui.window,
	)
}
