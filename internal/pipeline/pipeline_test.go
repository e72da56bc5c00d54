package pipeline_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"squitter1090/internal/adsbmsg"
	"squitter1090/internal/capture"
	"squitter1090/internal/pipeline"
	"squitter1090/internal/tracker"
)

// Synthetic, CRC-valid DF17 frames for ICAO 4B17E5: an identification
// message, and an even/odd airborne-position pair (altitude -1000ft,
// CPR lat/lon both zero) within the 10s pairing window.
const (
	identFrameHex   = "8D4B17E5205054D4C72CF493014F"
	evenPosFrameHex = "884B17E558010000000000D3D343"
	oddPosFrameHex  = "884B17E558010400000000DFF87B"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 14)
	return b
}

// buildCapture writes a capture file covering the identification message
// followed by a paired even/odd airborne position, all for the same
// aircraft, at increasing timestamps within the pairing window.
func buildCapture(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	w := capture.NewWriter(&buf)

	require.NoError(t, w.Write(1_000_000_000, mustDecodeHex(t, identFrameHex)))
	require.NoError(t, w.Write(2_000_000_000, mustDecodeHex(t, evenPosFrameHex)))
	require.NoError(t, w.Write(2_500_000_000, mustDecodeHex(t, oddPosFrameHex)))

	return &buf
}

func TestPipeline_CaptureSourceEndToEnd(t *testing.T) {
	buf := buildCapture(t)
	src := pipeline.NewCaptureSource(capture.NewReader(buf))

	mgr := tracker.NewManager(nil)
	p := pipeline.New(mgr, nil, 10, time.Hour)

	var applied []string
	p.OnMessage = func(m adsbmsg.Message) {
		applied = append(applied, m.ICAO)
	}

	err := p.Run(context.Background(), src)
	require.NoError(t, err)

	known := mgr.Known()
	require.Contains(t, known, "4B17E5")

	state := known["4B17E5"]
	assert.Equal(t, "4B17E5", state.ICAO)
	assert.True(t, state.HasAltitude)
	assert.True(t, state.HasPosition)
	require.Len(t, state.Trajectory, 1)
	assert.Equal(t, int64(2_500_000_000), state.Trajectory[0].TimestampNs)

	assert.Equal(t, []string{"4B17E5", "4B17E5", "4B17E5"}, applied)
}

func TestPipeline_CaptureSourceStopsOnContextCancellation(t *testing.T) {
	buf := buildCapture(t)
	src := pipeline.NewCaptureSource(capture.NewReader(buf))

	mgr := tracker.NewManager(nil)
	p := pipeline.New(mgr, nil, 10, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx, src)
	assert.NoError(t, err)
}

func TestPipeline_EmptyCaptureProducesNoAircraft(t *testing.T) {
	var buf bytes.Buffer
	src := pipeline.NewCaptureSource(capture.NewReader(&buf))

	mgr := tracker.NewManager(nil)
	p := pipeline.New(mgr, nil, 10, time.Hour)

	err := p.Run(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, mgr.Known())
}
