package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyPasteLink       = "paste_link"
	KeyDownload        = "download"
	KeyDownloading     = "downloading"
	KeySettings        = "settings"
	KeyFile            = "file"
	KeyLanguage        = "language"
	KeyOutputDirectory = "output_directory"
	KeySampleRate      = "sample_rate"
	KeyChannels        = "channels"
	KeyBitDepth        = "bit_depth"
	KeyKeepSource      = "keep_source"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeyBrowse          = "browse"
	KeySettingsSaved   = "settings_saved"
	KeyNoLinkTitle     = "no_link_title"
	KeyNoLink          = "no_link"
	KeyInvalidURLTitle = "invalid_url_title"
	KeyInvalidURL      = "invalid_url"
	KeySuccessTitle    = "success_title"
	KeySuccess         = "success"
	KeyShowFile        = "show_file"
	KeyClose           = "close"
	KeyFailureTitle    = "failure_title"
	KeyFailure         = "failure"
	KeyFFmpegTitle     = "ffmpeg_title"
	KeyFFmpegMissing   = "ffmpeg_missing"
)

// Languages
const (
	LanguageSystem  = "system"
	LanguageEnglish = "en"
	LanguagePolish  = "pl"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LanguageEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == LanguageSystem {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LanguageEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LanguageEnglish: "English",
		LanguagePolish:  "Polski",
	}
}

// systemLanguage derives a language code from LC_ALL, LC_MESSAGES or LANG
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			if strings.HasPrefix(strings.ToLower(v), LanguagePolish) {
				return LanguagePolish
			}
			return LanguageEnglish
		}
	}
	return LanguageEnglish
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LanguageEnglish] = map[string]string{
		KeyAppTitle:        "YT → WAV Downloader",
		KeyPasteLink:       "Paste a YouTube link:",
		KeyDownload:        "Download",
		KeyDownloading:     "Downloading...",
		KeySettings:        "Settings",
		KeyFile:            "File",
		KeyLanguage:        "Language",
		KeyOutputDirectory: "Output directory",
		KeySampleRate:      "Sample rate (Hz)",
		KeyChannels:        "Channels",
		KeyBitDepth:        "Bit depth",
		KeyKeepSource:      "Keep downloaded source file",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeyBrowse:          "Browse",
		KeySettingsSaved:   "Settings saved successfully!",
		KeyNoLinkTitle:     "No link",
		KeyNoLink:          "Please paste a YouTube link to download.",
		KeyInvalidURLTitle: "Invalid link",
		KeyInvalidURL:      "This does not look like a valid YouTube link.",
		KeySuccessTitle:    "Success",
		KeySuccess:         "Audio was downloaded and saved as WAV!\n\nLocation: %s",
		KeyShowFile:        "Show file",
		KeyClose:           "Close",
		KeyFailureTitle:    "Download error",
		KeyFailure:         "Could not download the audio.\n\nCheck the YouTube link and your internet connection.",
		KeyFFmpegTitle:     "FFmpeg error",
		KeyFFmpegMissing:   "FFmpeg is not installed or not available in PATH.\n\nInstallation:\n• Windows: choco install ffmpeg\n• macOS: brew install ffmpeg\n• Linux: sudo apt install ffmpeg",
	}

	// Polish texts
	l.texts[LanguagePolish] = map[string]string{
		KeyAppTitle:        "YT → WAV Downloader",
		KeyPasteLink:       "Wklej link YouTube:",
		KeyDownload:        "Pobierz",
		KeyDownloading:     "Pobieranie...",
		KeySettings:        "Ustawienia",
		KeyFile:            "Plik",
		KeyLanguage:        "Język",
		KeyOutputDirectory: "Katalog docelowy",
		KeySampleRate:      "Częstotliwość (Hz)",
		KeyChannels:        "Kanały",
		KeyBitDepth:        "Głębia bitowa",
		KeyKeepSource:      "Zachowaj pobrany plik źródłowy",
		KeySave:            "Zapisz",
		KeyCancel:          "Anuluj",
		KeyBrowse:          "Przeglądaj",
		KeySettingsSaved:   "Ustawienia zapisane!",
		KeyNoLinkTitle:     "Brak linku",
		KeyNoLink:          "Proszę wkleić link YouTube do pobrania.",
		KeyInvalidURLTitle: "Nieprawidłowy link",
		KeyInvalidURL:      "To nie wygląda na prawidłowy link YouTube.",
		KeySuccessTitle:    "Sukces",
		KeySuccess:         "Audio zostało pomyślnie pobrane i zapisane jako WAV!\n\nLokalizacja: %s",
		KeyShowFile:        "Pokaż plik",
		KeyClose:           "Zamknij",
		KeyFailureTitle:    "Błąd pobierania",
		KeyFailure:         "Nie udało się pobrać audio.\n\nSprawdź link YouTube i połączenie internetowe.",
		KeyFFmpegTitle:     "Błąd FFmpeg",
		KeyFFmpegMissing:   "FFmpeg nie jest zainstalowany lub niedostępny w PATH.\n\nInstrukcje instalacji:\n• Windows: choco install ffmpeg\n• macOS: brew install ffmpeg\n• Linux: sudo apt install ffmpeg",
	}
}
