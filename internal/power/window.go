package power

import (
	"fmt"
	"io"
)

// BatchCapacity is B, the fixed number of power values read per underlying
// batch in production use.
const BatchCapacity = 65536

// Window is a double-buffered, randomly-addressable view over a streaming
// power sample source. Get(i) is constant time across batch boundaries:
// the window never copies samples between buffers, it only swaps which
// buffer is "current".
type Window struct {
	computer *Computer
	size     int // W
	batchCap int // B

	current, next     []int32
	position          int64 // absolute index of window[0]
	totalSamplesRead  int64
	streamExhaustedAt int64 // total samples available once EOF is seen; -1 until then
}

// NewWindow constructs a Window of width w (0 < w <= BatchCapacity) reading
// its initial batch of BatchCapacity power values from c.
func NewWindow(c *Computer, w int) (*Window, error) {
	return newWindow(c, w, BatchCapacity)
}

// newWindowWithCapacity is the package-internal constructor used by tests
// to exercise batch-boundary behavior without a full 65536-sample batch.
func newWindowWithCapacity(c *Computer, w, batchCap int) (*Window, error) {
	return newWindow(c, w, batchCap)
}

func newWindow(c *Computer, w, batchCap int) (*Window, error) {
	if w <= 0 || w > batchCap {
		return nil, fmt.Errorf("%w: window size %d must be in (0, %d]", ErrInvalidArgument, w, batchCap)
	}
	win := &Window{
		computer:          c,
		size:              w,
		batchCap:          batchCap,
		current:           make([]int32, batchCap),
		next:              make([]int32, batchCap),
		streamExhaustedAt: -1,
	}
	if err := win.fillBatch(win.current); err != nil {
		return nil, err
	}
	return win, nil
}

// fillBatch reads one full batch of batchCap power values into buf,
// tracking total_samples_read and the EOF boundary.
func (w *Window) fillBatch(buf []int32) error {
	n, err := w.computer.ReadBatch(buf)
	if err != nil && err != io.EOF {
		return err
	}
	w.totalSamplesRead += int64(n)
	if err == io.EOF {
		w.streamExhaustedAt = w.totalSamplesRead
	}
	return nil
}

// Size returns W, the window width.
func (w *Window) Size() int {
	return w.size
}

// Position returns the absolute index of window[0].
func (w *Window) Position() int64 {
	return w.position
}

// IsFull reports whether the window is entirely backed by real data: the
// tail at stream end must be rejected.
func (w *Window) IsFull() bool {
	if w.streamExhaustedAt < 0 {
		return true
	}
	return w.position+int64(w.size) <= w.streamExhaustedAt
}

// Get returns the power sample at position+i for 0 <= i < W, by indexing
// into the current or next batch using (position+i) mod B.
func (w *Window) Get(i int) int32 {
	batchCap := int64(w.batchCap)
	abs := (w.position + int64(i)) % batchCap
	if abs < 0 {
		abs += batchCap
	}
	boundary := w.position % batchCap
	if abs >= boundary {
		return w.current[abs]
	}
	return w.next[abs]
}

// Advance increments position by 1, prefetching and swapping batches at the
// exact boundaries the spec prescribes.
func (w *Window) Advance() error {
	batchCap := int64(w.batchCap)
	mod := (w.position + 1) % batchCap
	if mod+int64(w.size)-1 == batchCap {
		if err := w.fillBatch(w.next); err != nil {
			return err
		}
	}
	w.position++
	if mod == 0 {
		w.current, w.next = w.next, w.current
	}
	return nil
}

// AdvanceBy is equivalent to n calls to Advance, n >= 0.
func (w *Window) AdvanceBy(n int) error {
	for i := 0; i < n; i++ {
		if err := w.Advance(); err != nil {
			return err
		}
	}
	return nil
}
