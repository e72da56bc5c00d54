package iqsample

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBatch_DecodesLittleEndianCenteredSample(t *testing.T) {
	// byte pair (low, high) = (0x00, 0x08) -> 0x0800 = 2048 -> sample 0
	r := bytes.NewReader([]byte{0x00, 0x08, 0xFF, 0x0F})
	d, err := NewDecoder(r, 2)
	require.NoError(t, err)

	out := make([]int16, 2)
	n, err := d.ReadBatch(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int16(0), out[0])
	assert.Equal(t, int16(0x0FFF-2048), out[1])
}

func TestReadBatch_RejectsMismatchedBufferLength(t *testing.T) {
	d, err := NewDecoder(bytes.NewReader(nil), 4)
	require.NoError(t, err)

	_, err = d.ReadBatch(make([]int16, 3))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReadBatch_ReturnsEOFWithPartialBatch(t *testing.T) {
	r := bytes.NewReader([]byte{0x00, 0x08})
	d, err := NewDecoder(r, 4)
	require.NoError(t, err)

	out := make([]int16, 4)
	n, err := d.ReadBatch(out)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewDecoder_RejectsNonPositiveBatchSize(t *testing.T) {
	_, err := NewDecoder(bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
