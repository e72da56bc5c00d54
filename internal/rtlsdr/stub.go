//go:build !cgo

// Package rtlsdr wraps librtlsdr (via gortlsdr). This build excludes cgo,
// so RTL-SDR hardware support is unavailable; every operation reports an
// error instead of touching real hardware.
package rtlsdr

import (
	"context"
	"errors"
	"io"
)

// ErrUnavailable is returned by every RTLSDRDevice operation in a
// non-cgo build.
var ErrUnavailable = errors.New("rtlsdr: hardware support requires a cgo build")

// RTLSDRDevice stands in for the cgo-backed device in builds without cgo.
type RTLSDRDevice struct{}

// NewRTLSDRDevice always fails: RTL-SDR hardware support requires cgo.
func NewRTLSDRDevice(index int) (*RTLSDRDevice, error) {
	return nil, ErrUnavailable
}

// Configure always fails in a non-cgo build.
func (r *RTLSDRDevice) Configure(frequency, sampleRate uint32, gain int) error {
	return ErrUnavailable
}

// StartCapture always fails in a non-cgo build.
func (r *RTLSDRDevice) StartCapture(ctx context.Context, dataChan chan<- []byte) error {
	return ErrUnavailable
}

// Close is a no-op in a non-cgo build.
func (r *RTLSDRDevice) Close() error {
	return nil
}

// SampleReader returns a reader that immediately fails: RTL-SDR hardware
// support requires a cgo build.
func SampleReader(dataChan <-chan []byte, errChan <-chan error) io.Reader {
	return errReader{}
}

type errReader struct{}

func (errReader) Read(p []byte) (int, error) {
	return 0, ErrUnavailable
}
