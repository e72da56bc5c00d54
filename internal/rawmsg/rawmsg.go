// Package rawmsg implements the raw message constructor and the
// type-code dispatch that routes a raw frame to the typed message decoder
// that understands it.
package rawmsg

import (
	"squitter1090/internal/crc24"
	"squitter1090/internal/geo"
)

// Kind identifies which typed-message family a raw message's type code
// dispatches to.
type Kind int

const (
	// KindUnrecognized covers type codes the parser does not understand.
	KindUnrecognized Kind = iota
	KindIdentification
	KindAirbornePosition
	KindAirborneVelocity
)

// Message is a validated 14-byte Mode S extended squitter frame paired
// with the sample-relative timestamp at which it was decoded.
type Message struct {
	TimestampNs int64
	bytes       geo.ByteString
}

// Of returns a raw message when CRC(bytes) == 0, else false.
func Of(timestampNs int64, frame []byte) (Message, bool) {
	if len(frame) != 14 {
		return Message{}, false
	}
	if crc24.Compute(frame) != 0 {
		return Message{}, false
	}
	return Message{TimestampNs: timestampNs, bytes: geo.NewByteString(frame)}, true
}

// Size returns 14 if the 5 MSBs of byte0 equal 17 (a DF17 extended
// squitter), else 0.
func Size(byte0 byte) int {
	if byte0>>3 == 17 {
		return 14
	}
	return 0
}

// DownlinkFormat returns the 5-bit downlink format in byte 0.
func (m Message) DownlinkFormat() int {
	return int(m.bytes.At(0) >> 3)
}

// ICAOAddress returns the 24-bit ICAO address encoded in bytes 1-3, as six
// uppercase hex digits.
func (m Message) ICAOAddress() string {
	v := m.bytes.BytesInRange(1, 4)
	const hex = "0123456789ABCDEF"
	out := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		out[i] = hex[v&0xF]
		v >>= 4
	}
	return string(out)
}

// Payload returns the 56-bit (7-byte) ME payload, bytes 4-10.
func (m Message) Payload() geo.ByteString {
	return geo.NewByteString(m.bytes.Bytes()[4:11])
}

// TypeCode returns the 5-bit type code in the top bits of the payload.
func (m Message) TypeCode() int {
	return int(m.Payload().At(0) >> 3)
}

// Bytes returns the full 14-byte frame.
func (m Message) Bytes() []byte {
	return m.bytes.Bytes()
}

// Dispatch classifies the message's type code per the parser's dispatch
// table.
func (m Message) Dispatch() Kind {
	tc := m.TypeCode()
	switch {
	case tc >= 1 && tc <= 4:
		return KindIdentification
	case (tc >= 9 && tc <= 18) || (tc >= 20 && tc <= 22):
		return KindAirbornePosition
	case tc == 19:
		return KindAirborneVelocity
	default:
		return KindUnrecognized
	}
}
