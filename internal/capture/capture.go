// Package capture implements the capture file format of spec §6: a
// sequence of fixed records, each an 8-byte signed big-endian timestamp_ns
// followed by 14 bytes of raw ADS-B frame, terminated by EOF. It lets the
// pipeline run against a prerecorded file instead of a live demodulator,
// skipping components A-D entirely (test mode).
package capture

import (
	"encoding/binary"
	"fmt"
	"io"
)

// FrameSize is the fixed size of one Mode S extended squitter frame.
const FrameSize = 14

// recordSize is the fixed size of one capture record: an 8-byte timestamp
// plus a 14-byte frame.
const recordSize = 8 + FrameSize

// Record is one decoded (timestamp, frame) pair from a capture file.
type Record struct {
	TimestampNs int64
	Frame       [FrameSize]byte
}

// Reader reads capture records from an underlying byte stream until EOF.
type Reader struct {
	r   io.Reader
	buf [recordSize]byte
}

// NewReader wraps r as a capture record source.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next reads the next record, returning io.EOF once the stream is
// exhausted. A short read mid-record is reported as io.ErrUnexpectedEOF.
func (rd *Reader) Next() (Record, error) {
	n, err := io.ReadFull(rd.r, rd.buf[:])
	if err == io.EOF {
		return Record{}, io.EOF
	}
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			return Record{}, fmt.Errorf("capture: truncated record (%d of %d bytes): %w", n, recordSize, err)
		}
		return Record{}, err
	}

	var rec Record
	rec.TimestampNs = int64(binary.BigEndian.Uint64(rd.buf[0:8]))
	copy(rec.Frame[:], rd.buf[8:recordSize])
	return rec, nil
}

// Writer writes capture records to an underlying byte sink, for generating
// fixture captures in tests.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w as a capture record sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends one record to the stream.
func (wr *Writer) Write(timestampNs int64, frame []byte) error {
	if len(frame) != FrameSize {
		return fmt.Errorf("capture: frame must be %d bytes, got %d", FrameSize, len(frame))
	}

	var buf [recordSize]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(timestampNs))
	copy(buf[8:recordSize], frame)

	_, err := wr.w.Write(buf[:])
	return err
}
