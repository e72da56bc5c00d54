// Package config holds the CLI-configurable knobs of the pipeline: sample
// source selection, window sizing, purge interval, and the ambient
// (logging, metadata) paths. Mirrors the teacher's internal/app/config.go.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration constants. Frequency/sample rate/gain match the
// teacher's RTL-SDR defaults; window size and purge interval come from
// spec.md §4.D/§4.J.
const (
	DefaultFrequency  = 1090000000 // 1090 MHz
	DefaultSampleRate = 2400000    // 2.4 MHz
	DefaultGain       = 40         // Manual gain, dB

	// DefaultWindowSize is the demodulator's power window width: 1200
	// samples (120us), enough for the 8us preamble plus 112us payload.
	DefaultWindowSize = 1200

	// DefaultPurgeInterval is how often the consumer calls
	// StateManager.Purge, standing in for the UI's vsync pulse.
	DefaultPurgeInterval = 1 * time.Second

	// DefaultQueueCapacity is the bounded producer/consumer channel's
	// capacity, matching the teacher's dataChan := make(chan []byte, 100)
	// idiom (see DESIGN.md's Open Question resolution).
	DefaultQueueCapacity = 100
)

// SourceKind selects where the pipeline reads its IQ/frame stream from.
type SourceKind int

const (
	// SourceRTLSDR reads live IQ samples from an RTL-SDR device.
	SourceRTLSDR SourceKind = iota
	// SourceIQFile reads the raw IQ sample file named by InputPath through
	// the full demodulator; standard input is not supported.
	SourceIQFile
	// SourceCaptureFile reads pre-demodulated (timestamp, frame) records
	// via internal/capture, skipping components A-D (test mode).
	SourceCaptureFile
)

// String renders a SourceKind for logging.
func (s SourceKind) String() string {
	switch s {
	case SourceRTLSDR:
		return "rtl-sdr"
	case SourceIQFile:
		return "iq-file"
	case SourceCaptureFile:
		return "capture-file"
	default:
		return "unknown"
	}
}

func parseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "", "rtl-sdr":
		return SourceRTLSDR, nil
	case "iq-file":
		return SourceIQFile, nil
	case "capture-file":
		return SourceCaptureFile, nil
	default:
		return 0, fmt.Errorf("config: unrecognized source %q", s)
	}
}

// Config holds the application's runtime configuration.
type Config struct {
	Source SourceKind

	Frequency   uint32
	SampleRate  uint32
	Gain        int
	DeviceIndex int

	InputPath string // IQ file or capture file path, when Source != SourceRTLSDR

	WindowSize      int
	QueueCapacity   int
	PurgeInterval   time.Duration
	MetadataArchive string

	LogDir       string
	LogRotateUTC bool
	Verbose      bool
	ShowVersion  bool
}

// Default returns a Config populated with the package's defaults.
func Default() Config {
	return Config{
		Source:        SourceRTLSDR,
		Frequency:     DefaultFrequency,
		SampleRate:    DefaultSampleRate,
		Gain:          DefaultGain,
		WindowSize:    DefaultWindowSize,
		QueueCapacity: DefaultQueueCapacity,
		PurgeInterval: DefaultPurgeInterval,
		LogDir:        "./logs",
		LogRotateUTC:  true,
	}
}

// fileConfig is the on-disk YAML shape for a config file: plain scalar
// types only, translated into a Config by LoadFile. Kept separate from
// Config so SourceKind and time.Duration don't need custom YAML codecs.
type fileConfig struct {
	Source          string `yaml:"source"`
	Frequency       uint32 `yaml:"frequency"`
	SampleRate      uint32 `yaml:"sample_rate"`
	Gain            int    `yaml:"gain"`
	DeviceIndex     int    `yaml:"device_index"`
	InputPath       string `yaml:"input_path"`
	WindowSize      int    `yaml:"window_size"`
	QueueCapacity   int    `yaml:"queue_capacity"`
	PurgeInterval   string `yaml:"purge_interval"`
	MetadataArchive string `yaml:"metadata_archive"`
	LogDir          string `yaml:"log_dir"`
	LogRotateUTC    bool   `yaml:"log_rotate_utc"`
	Verbose         bool   `yaml:"verbose"`
}

// LoadFile reads a YAML config file at path, overlaying its fields onto
// the package defaults. Fields the file omits keep their default value.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	fc := fileConfig{
		Frequency:     DefaultFrequency,
		SampleRate:    DefaultSampleRate,
		Gain:          DefaultGain,
		WindowSize:    DefaultWindowSize,
		QueueCapacity: DefaultQueueCapacity,
		PurgeInterval: DefaultPurgeInterval.String(),
		LogDir:        "./logs",
		LogRotateUTC:  true,
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	source, err := parseSourceKind(fc.Source)
	if err != nil {
		return Config{}, err
	}
	purgeInterval, err := time.ParseDuration(fc.PurgeInterval)
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid purge_interval %q: %w", fc.PurgeInterval, err)
	}

	return Config{
		Source:          source,
		Frequency:       fc.Frequency,
		SampleRate:      fc.SampleRate,
		Gain:            fc.Gain,
		DeviceIndex:     fc.DeviceIndex,
		InputPath:       fc.InputPath,
		WindowSize:      fc.WindowSize,
		QueueCapacity:   fc.QueueCapacity,
		PurgeInterval:   purgeInterval,
		MetadataArchive: fc.MetadataArchive,
		LogDir:          fc.LogDir,
		LogRotateUTC:    fc.LogRotateUTC,
		Verbose:         fc.Verbose,
	}, nil
}
