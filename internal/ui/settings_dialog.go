package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytwav/internal/config"
)

// Select options
var (
	channelOptions  = []string{"1", "2"}
	bitDepthOptions = []string{"16", "24"}
)

// SettingsDialog edits the stored audio preferences
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	outputDirEntry   *widget.Entry
	sampleRateSelect *widget.Select
	channelsSelect   *widget.Select
	bitDepthSelect   *widget.Select
	keepSourceCheck  *widget.Check
	languageSelect   *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved may be nil.
func NewSettingsDialog(settings *config.Settings, l *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: l,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.outputDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	rates := []string{}
	for _, r := range sd.settings.GetSampleRateOptions() {
		rates = append(rates, strconv.Itoa(r))
	}
	sd.sampleRateSelect = widget.NewSelect(rates, nil)
	sd.channelsSelect = widget.NewSelect(channelOptions, nil)
	sd.bitDepthSelect = widget.NewSelect(bitDepthOptions, nil)
	sd.keepSourceCheck = widget.NewCheck(t(KeyKeepSource), nil)

	languages := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languages = append(languages, code)
	}
	sort.Strings(languages)
	sd.languageSelect = widget.NewSelect(languages, nil)

	form := container.NewVBox(
		widget.NewLabel(t(KeyOutputDirectory)+":"),
		outputDirRow,
		widget.NewForm(
			widget.NewFormItem(t(KeySampleRate), sd.sampleRateSelect),
			widget.NewFormItem(t(KeyChannels), sd.channelsSelect),
			widget.NewFormItem(t(KeyBitDepth), sd.bitDepthSelect),
			widget.NewFormItem(t(KeyLanguage), sd.languageSelect),
		),
		sd.keepSourceCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.sampleRateSelect.SetSelected(strconv.Itoa(sd.settings.GetSampleRate()))
	sd.channelsSelect.SetSelected(strconv.Itoa(sd.settings.GetChannels()))
	sd.bitDepthSelect.SetSelected(strconv.Itoa(sd.settings.GetBitDepth()))
	sd.keepSourceCheck.SetChecked(sd.settings.GetKeepSource())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save copies the widget state into the preference store
func (sd *SettingsDialog) save() {
	if dir := sd.outputDirEntry.Text; dir != "" {
		sd.settings.SetOutputDirectory(dir)
	}
	if rate, err := strconv.Atoi(sd.sampleRateSelect.Selected); err == nil {
		sd.settings.SetSampleRate(rate)
	}
	if ch, err := strconv.Atoi(sd.channelsSelect.Selected); err == nil {
		sd.settings.SetChannels(ch)
	}
	if bit, err := strconv.Atoi(sd.bitDepthSelect.Selected); err == nil {
		sd.settings.SetBitDepth(bit)
	}
	sd.settings.SetKeepSource(sd.keepSourceCheck.Checked)
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
