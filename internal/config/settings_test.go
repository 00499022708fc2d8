package config

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/ytwav/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestOutputDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetOutputDirectory()
	if filepath.Base(dir) != model.DefaultOutputDir {
		t.Errorf("Expected default directory to end in %s, got %s", model.DefaultOutputDir, dir)
	}

	// Test setting custom value
	customDir := "/custom/wav"
	settings.SetOutputDirectory(customDir)

	if got := settings.GetOutputDirectory(); got != customDir {
		t.Errorf("Expected output directory %s, got %s", customDir, got)
	}
}

func TestSampleRate(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetSampleRate(); got != model.DefaultSampleRate {
		t.Errorf("Expected default sample rate %d, got %d", model.DefaultSampleRate, got)
	}

	settings.SetSampleRate(44100)
	if got := settings.GetSampleRate(); got != 44100 {
		t.Errorf("Expected sample rate 44100, got %d", got)
	}

	settings.SetSampleRate(-1)
	if got := settings.GetSampleRate(); got != model.DefaultSampleRate {
		t.Errorf("Negative sample rate should reset to default, got %d", got)
	}
}

func TestChannels(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetChannels(); got != model.DefaultChannels {
		t.Errorf("Expected default channels %d, got %d", model.DefaultChannels, got)
	}

	settings.SetChannels(1)
	if settings.GetChannels() != 1 {
		t.Error("Expected mono")
	}

	// Test boundary values
	settings.SetChannels(0)
	if settings.GetChannels() != 1 {
		t.Error("Channels should be clamped to minimum 1")
	}

	settings.SetChannels(6)
	if settings.GetChannels() != 2 {
		t.Error("Channels should be clamped to maximum 2")
	}
}

func TestBitDepth(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetBitDepth(); got != model.DefaultBitDepth {
		t.Errorf("Expected default bit depth %d, got %d", model.DefaultBitDepth, got)
	}

	settings.SetBitDepth(24)
	if settings.GetBitDepth() != 24 {
		t.Error("Expected 24-bit")
	}

	settings.SetBitDepth(32)
	if settings.GetBitDepth() != 16 {
		t.Error("Unsupported bit depth should fall back to 16")
	}
}

func TestKeepSource(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetKeepSource() != DefaultKeepSource {
		t.Errorf("Expected default keep-source %v", DefaultKeepSource)
	}

	settings.SetKeepSource(true)
	if !settings.GetKeepSource() {
		t.Error("Expected keep-source to be true")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("pl")
	if lang := settings.GetLanguage(); lang != "pl" {
		t.Errorf("Expected language 'pl', got %s", lang)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(test.NewApp())

	options := settings.GetLanguageOptions()
	expectedLangs := []string{"system", "en", "pl"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

func TestSettingsRequest(t *testing.T) {
	settings := NewSettings(test.NewApp())
	settings.SetOutputDirectory("/out")
	settings.SetChannels(1)
	settings.SetBitDepth(24)
	settings.SetKeepSource(true)

	req := settings.Request("  https://youtu.be/x ")
	if req.URL != "https://youtu.be/x" {
		t.Errorf("Expected trimmed URL, got %q", req.URL)
	}
	if req.OutputDir != "/out" || req.Channels != 1 || req.BitDepth != 24 || !req.KeepSource {
		t.Errorf("Request does not reflect settings: %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}
}
