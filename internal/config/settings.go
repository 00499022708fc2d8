package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/ytwav/internal/model"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir  = "output_directory"
	KeySampleRate = "sample_rate"
	KeyChannels   = "channels"
	KeyBitDepth   = "bit_depth"
	KeyKeepSource = "keep_source"
	KeyLanguage   = "app_language"
)

// Default values
const (
	DefaultLanguage   = "system"
	DefaultKeepSource = false
)

// Settings manages the GUI's persisted audio preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the configured output directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		dir = defaultOutputDirectory()
		s.SetOutputDirectory(dir)
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetSampleRate returns the configured sample rate in Hz
func (s *Settings) GetSampleRate() int {
	value := s.app.Preferences().Int(KeySampleRate)
	if value <= 0 {
		s.SetSampleRate(model.DefaultSampleRate)
		return model.DefaultSampleRate
	}
	return value
}

// SetSampleRate sets the sample rate; non-positive values reset the default
func (s *Settings) SetSampleRate(rate int) {
	if rate <= 0 {
		rate = model.DefaultSampleRate
	}
	s.app.Preferences().SetInt(KeySampleRate, rate)
}

// GetChannels returns the configured channel count
func (s *Settings) GetChannels() int {
	value := s.app.Preferences().Int(KeyChannels)
	if value != 1 && value != 2 {
		s.SetChannels(model.DefaultChannels)
		return model.DefaultChannels
	}
	return value
}

// SetChannels sets the channel count, clamped to mono or stereo
func (s *Settings) SetChannels(channels int) {
	if channels < 1 {
		channels = 1
	}
	if channels > 2 {
		channels = 2
	}
	s.app.Preferences().SetInt(KeyChannels, channels)
}

// GetBitDepth returns the configured bit depth
func (s *Settings) GetBitDepth() int {
	value := s.app.Preferences().Int(KeyBitDepth)
	if value != 16 && value != 24 {
		s.SetBitDepth(model.DefaultBitDepth)
		return model.DefaultBitDepth
	}
	return value
}

// SetBitDepth sets the bit depth; anything but 24 means 16
func (s *Settings) SetBitDepth(depth int) {
	if depth != 24 {
		depth = 16
	}
	s.app.Preferences().SetInt(KeyBitDepth, depth)
}

// GetKeepSource returns whether the downloaded container is kept
func (s *Settings) GetKeepSource() bool {
	return s.app.Preferences().BoolWithFallback(KeyKeepSource, DefaultKeepSource)
}

// SetKeepSource sets whether the downloaded container is kept
func (s *Settings) SetKeepSource(keep bool) {
	s.app.Preferences().SetBool(KeyKeepSource, keep)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"pl":     "Polski",
	}
}

// GetSampleRateOptions returns the sample rates offered in the GUI
func (s *Settings) GetSampleRateOptions() []int {
	return []int{44100, 48000, 96000}
}

// Request builds a download request for url from the stored preferences
func (s *Settings) Request(url string) *model.DownloadRequest {
	req := model.NewDownloadRequest(url)
	req.OutputDir = s.GetOutputDirectory()
	req.SampleRate = s.GetSampleRate()
	req.Channels = s.GetChannels()
	req.BitDepth = s.GetBitDepth()
	req.KeepSource = s.GetKeepSource()
	return req
}

// defaultOutputDirectory places wav_out in the user's home directory,
// falling back to the working directory
func defaultOutputDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return model.DefaultOutputDir
	}
	return filepath.Join(home, model.DefaultOutputDir)
}
