// Package iqsample implements the sample decoder, the pipeline's entry
// point from the raw IQ byte stream.
package iqsample

import (
	"errors"
	"fmt"
	"io"
)

// ErrInvalidArgument is returned when a caller-supplied buffer does not
// match the decoder's configured batch size.
var ErrInvalidArgument = errors.New("iqsample: invalid argument")

// Decoder reads pairs of bytes from an underlying stream and converts each
// pair into a signed sample. Each pair encodes an unsigned 12-bit sample in
// little-endian byte order (low byte first); the sample is centered by
// subtracting 2048.
type Decoder struct {
	r         io.Reader
	batchSize int
	buf       []byte
}

// NewDecoder constructs a Decoder reading from r with the given batch size,
// the fixed number of samples ReadBatch produces per call.
func NewDecoder(r io.Reader, batchSize int) (*Decoder, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size %d must be positive", ErrInvalidArgument, batchSize)
	}
	return &Decoder{
		r:         r,
		batchSize: batchSize,
		buf:       make([]byte, 2*batchSize),
	}, nil
}

// ReadBatch decodes up to BatchSize() samples into out, returning the
// number of samples actually produced (fewer than BatchSize() only at end
// of stream). Fails with ErrInvalidArgument if len(out) does not match the
// configured batch size.
func (d *Decoder) ReadBatch(out []int16) (int, error) {
	if len(out) != d.batchSize {
		return 0, fmt.Errorf("%w: output buffer length %d does not match batch size %d", ErrInvalidArgument, len(out), d.batchSize)
	}

	n, err := io.ReadFull(d.r, d.buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, err
	}

	samples := n / 2
	for i := 0; i < samples; i++ {
		lo := d.buf[2*i]
		hi := d.buf[2*i+1]
		out[i] = int16((int(hi)<<8 | int(lo)) - 2048)
	}

	if samples < d.batchSize {
		return samples, io.EOF
	}
	return samples, nil
}

// BatchSize returns the configured batch size.
func (d *Decoder) BatchSize() int {
	return d.batchSize
}
