// Package power implements the power computer (component B) and the
// double-buffered power window (component C).
package power

import (
	"errors"
	"fmt"
	"io"

	"squitter1090/internal/iqsample"
)

// ErrInvalidArgument is returned when the batch size violates the
// computer's preconditions.
var ErrInvalidArgument = errors.New("power: invalid argument")

// ringCapacity is the fixed capacity of the Computer's recent-sample ring
// buffer; a power of two so the modulo is a bitmask.
const ringCapacity = 8

// Computer turns IQ samples into instantaneous power values. It maintains a
// circular buffer of the 8 most recent signed samples.
type Computer struct {
	decoder   *iqsample.Decoder
	batchSize int
	ring      [ringCapacity]int16
	next      int // index the next incoming sample will be written to
	iqBuf     []int16
}

// NewComputer constructs a Computer reading 2*batchSize samples per
// ReadBatch call from an underlying sample decoder fed by r. batchSize must
// be positive and divisible by 8.
func NewComputer(r io.Reader, batchSize int) (*Computer, error) {
	if batchSize <= 0 || batchSize%8 != 0 {
		return nil, fmt.Errorf("%w: batch size %d must be positive and divisible by 8", ErrInvalidArgument, batchSize)
	}
	dec, err := iqsample.NewDecoder(r, 2*batchSize)
	if err != nil {
		return nil, err
	}
	return &Computer{
		decoder:   dec,
		batchSize: batchSize,
		iqBuf:     make([]int16, 2*batchSize),
	}, nil
}

// push records a new incoming sample into the ring buffer.
func (c *Computer) push(s int16) {
	c.ring[c.next&(ringCapacity-1)] = s
	c.next++
}

// at returns the j-th oldest of the 8 most recent samples (0 = oldest,
// 7 = newest).
func (c *Computer) at(j int) int16 {
	return c.ring[(c.next+j)&(ringCapacity-1)]
}

// ReadBatch reads 2*batchSize samples from the underlying decoder and
// emits one power value per IQ pair into out (which must have length
// batchSize). Returns the number of power values produced.
func (c *Computer) ReadBatch(out []int32) (int, error) {
	if len(out) != c.batchSize {
		return 0, fmt.Errorf("%w: output buffer length %d does not match batch size %d", ErrInvalidArgument, len(out), c.batchSize)
	}

	n, err := c.decoder.ReadBatch(c.iqBuf)
	if err != nil && err != io.EOF {
		return 0, err
	}
	eof := err == io.EOF

	pairs := n / 2
	for p := 0; p < pairs; p++ {
		c.push(c.iqBuf[2*p])
		c.push(c.iqBuf[2*p+1])

		s0 := int32(c.at(0))
		s2 := int32(c.at(2))
		s4 := int32(c.at(4))
		s6 := int32(c.at(6))
		s1 := int32(c.at(1))
		s3 := int32(c.at(3))
		s5 := int32(c.at(5))
		s7 := int32(c.at(7))

		i := s6 - s4 + s2 - s0
		q := s7 - s5 + s3 - s1
		out[p] = i*i + q*q
	}

	if eof {
		return pairs, io.EOF
	}
	return pairs, nil
}
