package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, SourceRTLSDR, cfg.Source)
	assert.Equal(t, uint32(DefaultFrequency), cfg.Frequency)
	assert.Equal(t, DefaultPurgeInterval, cfg.PurgeInterval)
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
source: capture-file
input_path: /data/flight.cap
gain: 0
purge_interval: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SourceCaptureFile, cfg.Source)
	assert.Equal(t, "/data/flight.cap", cfg.InputPath)
	assert.Equal(t, 0, cfg.Gain)
	assert.Equal(t, 30*time.Second, cfg.PurgeInterval)
	// Fields the file omits keep their default.
	assert.Equal(t, uint32(DefaultSampleRate), cfg.SampleRate)
	assert.True(t, cfg.LogRotateUTC)
}

func TestLoadFile_RejectsUnknownSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: bogus\n"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_RejectsInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("purge_interval: not-a-duration\n"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSourceKind_StringUnknown(t *testing.T) {
	assert.Equal(t, "unknown", SourceKind(99).String())
}
