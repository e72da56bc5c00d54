package power

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplesToIQBytes(samples []int16) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		v := uint16(int(s) + 2048)
		buf[2*i] = byte(v & 0xFF)
		buf[2*i+1] = byte(v >> 8)
	}
	return buf
}

func TestComputer_PowerFormula(t *testing.T) {
	// 8 samples (oldest..newest): s0..s7 = 1..8
	samples := []int16{1, 2, 3, 4, 5, 6, 7, 8}
	r := bytes.NewReader(samplesToIQBytes(samples))
	c, err := NewComputer(r, 8)
	require.NoError(t, err)

	out := make([]int32, 8)
	n, err := c.ReadBatch(out)
	// Only half a batch is available, so the batch ends with io.EOF.
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 4, n)

	// After all 8 pushed, s0..s7 = 1..8:
	// I = s6-s4+s2-s0 = 7-5+3-1 = 4
	// Q = s7-s5+s3-s1 = 8-6+4-2 = 4
	// P = 16+16 = 32
	assert.Equal(t, int32(32), out[3])
}

func TestNewComputer_RejectsBadBatchSize(t *testing.T) {
	_, err := NewComputer(bytes.NewReader(nil), 7)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewComputer(bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWindow_GetStableAcrossNoopAdvanceBy(t *testing.T) {
	const batchCap = 16
	samples := make([]int16, 2*batchCap*4) // enough for several batches
	for i := range samples {
		samples[i] = int16(i % 7)
	}
	r := bytes.NewReader(samplesToIQBytes(samples))
	c, err := NewComputer(r, batchCap)
	require.NoError(t, err)
	win, err := newWindowWithCapacity(c, 4, batchCap)
	require.NoError(t, err)

	before := win.Get(0)
	require.NoError(t, win.AdvanceBy(0))
	after := win.Get(0)
	assert.Equal(t, before, after)
}

func TestWindow_IsFullRejectsTailAtEOF(t *testing.T) {
	const batchCap = 8
	samples := make([]int16, 16) // 8 power values total, exactly one batch
	r := bytes.NewReader(samplesToIQBytes(samples))
	c, err := NewComputer(r, batchCap)
	require.NoError(t, err)
	win, err := newWindowWithCapacity(c, 4, batchCap)
	require.NoError(t, err)

	// At position 5 the 4-wide window [5,9) runs past the 8th value.
	require.NoError(t, win.AdvanceBy(5))
	assert.False(t, win.IsFull())
}

func TestWindow_BatchBoundarySwap(t *testing.T) {
	const batchCap = 8
	// two full batches worth of power values, second batch all distinct
	samples := make([]int16, 2*batchCap*2)
	for i := range samples {
		samples[i] = int16(i)
	}
	r := bytes.NewReader(samplesToIQBytes(samples))
	c, err := NewComputer(r, batchCap)
	require.NoError(t, err)
	win, err := newWindowWithCapacity(c, 4, batchCap)
	require.NoError(t, err)

	require.NoError(t, win.AdvanceBy(batchCap))
	assert.Equal(t, int64(batchCap), win.Position())
	assert.True(t, win.IsFull())
}
