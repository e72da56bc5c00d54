// Package adsbmsg decodes the payload of a raw message into one of the
// typed messages the state accumulator understands: identification,
// airborne position, and airborne velocity.
package adsbmsg

import (
	"fmt"
	"strings"

	"squitter1090/internal/rawmsg"
)

// Identification is a decoded type-code 1-4 message: callsign and wake/
// emitter category.
type Identification struct {
	Callsign string
	Category int
}

// charsetValue maps a six-bit Mode S charset code to its character, or
// false if the code is invalid and the whole message must be rejected.
func charsetValue(n uint64) (byte, bool) {
	switch {
	case n >= 1 && n <= 26:
		return byte('A' + n - 1), true
	case n >= 48 && n <= 57:
		return byte('0' + n - 48), true
	case n == 32:
		return ' ', true
	default:
		return 0, false
	}
}

// DecodeIdentification decodes a type-code 1-4 raw message. Returns false
// if any character code is invalid.
func DecodeIdentification(m rawmsg.Message) (Identification, bool) {
	payload := m.Payload()
	typeCode := m.TypeCode()

	var sb strings.Builder
	for c := 0; c < 8; c++ {
		from := 42 - 6*c
		to := from + 6
		ch, ok := charsetValue(payload.Bits(from, to))
		if !ok {
			return Identification{}, false
		}
		sb.WriteByte(ch)
	}
	callsign := strings.TrimRight(sb.String(), " ")

	category := ((14 - typeCode) << 4) | int(payload.Bits(48, 51))

	return Identification{
		Callsign: callsign,
		Category: category,
	}, true
}

func (id Identification) String() string {
	return fmt.Sprintf("%s (category %d)", id.Callsign, id.Category)
}
