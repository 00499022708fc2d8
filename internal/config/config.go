// Package config loads ytwav configuration from a YAML file, the
// environment and the GUI preference store.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ytget/ytwav/internal/model"
)

const (
	// EnvVarPrefix prefixes every environment variable, e.g. YTWAV_OUT
	EnvVarPrefix = "YTWAV"

	// ConfigFileEnvVar names the YAML file when --config is not given
	ConfigFileEnvVar = EnvVarPrefix + "_CONFIG_FILE"
)

// Default file locations and binaries
const (
	DefaultFFmpeg      = "ffmpeg"
	DefaultMetricsFile = ""
	DefaultStatusFile  = "maintenance_status.json"
	DefaultMaintLog    = "maintenance.log"
)

// Config is the process-wide configuration shared by the commands
type Config struct {
	OutputDir   string `envconfig:"OUT"          yaml:"out"`
	SampleRate  int    `envconfig:"SAMPLE_RATE"  yaml:"sampleRate"`
	Channels    int    `envconfig:"CHANNELS"     yaml:"channels"`
	BitDepth    int    `envconfig:"BIT_DEPTH"    yaml:"bitDepth"`
	KeepSource  bool   `envconfig:"KEEP_SOURCE"  yaml:"keepSource"`
	Retries     int    `envconfig:"RETRIES"      yaml:"retries"`
	FFmpeg      string `envconfig:"FFMPEG"       yaml:"ffmpeg"`
	MetricsFile string `envconfig:"METRICS_FILE" yaml:"metricsFile"`
	StatusFile  string `envconfig:"STATUS_FILE"  yaml:"statusFile"`
	LogFile     string `envconfig:"LOG_FILE"     yaml:"logFile"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		OutputDir:   model.DefaultOutputDir,
		SampleRate:  model.DefaultSampleRate,
		Channels:    model.DefaultChannels,
		BitDepth:    model.DefaultBitDepth,
		Retries:     model.DefaultMaxRetries,
		FFmpeg:      DefaultFFmpeg,
		MetricsFile: DefaultMetricsFile,
		StatusFile:  DefaultStatusFile,
	}
}

// Load layers the defaults, the YAML file at path and the YTWAV_*
// environment. An empty path falls back to YTWAV_CONFIG_FILE; when both
// are empty no file is read.
func Load(path string) (*Config, error) {
	c := Default()

	if path == "" {
		path = os.Getenv(ConfigFileEnvVar)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := c.decodeYAML(data); err != nil {
			return nil, fmt.Errorf("unmarshaling config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvVarPrefix, c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	return c, nil
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the audio parameters a request is built from
func (c *Config) Validate() error {
	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("%w: channels=%d (want 1 or 2)", model.ErrInvalidChannels, c.Channels)
	}
	if c.BitDepth != 16 && c.BitDepth != 24 {
		return fmt.Errorf("%w: bit depth=%d (want 16 or 24)", model.ErrInvalidBitDepth, c.BitDepth)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate=%d", model.ErrInvalidSampleRate, c.SampleRate)
	}
	if c.Retries < 0 {
		return fmt.Errorf("invalid retries: %d", c.Retries)
	}
	return nil
}

// Request builds a download request for url from the configured
// audio parameters
func (c *Config) Request(url string) *model.DownloadRequest {
	req := model.NewDownloadRequest(url)
	req.OutputDir = c.OutputDir
	req.SampleRate = c.SampleRate
	req.Channels = c.Channels
	req.BitDepth = c.BitDepth
	req.KeepSource = c.KeepSource
	req.MaxRetries = c.Retries
	return req
}
