package adsbmsg

import (
	"squitter1090/internal/geo"
	"squitter1090/internal/rawmsg"
)

// AirbornePosition is a decoded type-code 9-18/20-22 message: CPR raw
// longitude/latitude (normalized to [0,1)), the message's CPR parity, and
// decoded altitude in meters.
type AirbornePosition struct {
	X, Y        float64 // normalized CPR longitude/latitude, in [0,1)
	Parity      int     // 0 = even, 1 = odd
	AltitudeM   float64
	HasAltitude bool
}

// altitudeRealignTable maps output bit position to the input bit it is
// drawn from, for the non-trivial (Gillham) altitude encoding.
var altitudeRealignTable = [12]int{4, 2, 0, 10, 8, 6, 5, 3, 1, 11, 9, 7}

// DecodeAirbornePosition decodes a type-code 9-18/20-22 raw message.
// Returns false if the altitude encoding is invalid.
func DecodeAirbornePosition(m rawmsg.Message) (AirbornePosition, bool) {
	payload := m.Payload()

	longitudeRaw := payload.Bits(0, 17)
	latitudeRaw := payload.Bits(17, 34)
	parity := int(payload.Bits(34, 35))
	altitudeRaw := payload.Bits(36, 48)

	pos := AirbornePosition{
		X:      float64(longitudeRaw) / 131072, // 2^17
		Y:      float64(latitudeRaw) / 131072,
		Parity: parity,
	}

	altM, ok := decodeAltitude(altitudeRaw)
	if !ok {
		return AirbornePosition{}, false
	}
	pos.AltitudeM = altM
	pos.HasAltitude = true

	return pos, true
}

// decodeAltitude decodes the 12-bit AC altitude field, dispatching on the
// Q-bit (bit 4).
func decodeAltitude(a uint64) (float64, bool) {
	qBit := (a>>4)&1 == 1

	if qBit {
		// Trivial case: A' is the 11 bits of A with bit 4 removed.
		upper := (a >> 5) & 0x7F // bits [5,12)
		lower := a & 0x0F        // bits [0,4)
		aPrime := (upper << 4) | lower
		return geo.FeetToMeters(-1000 + 25*float64(aPrime)), true
	}

	// Non-trivial case: realign, split into Gray-coded LSB/MSB fields.
	var realigned uint64
	for outBit, inBit := range altitudeRealignTable {
		bit := (a >> uint(inBit)) & 1
		realigned |= bit << uint(11-outBit)
	}

	lsb := grayDecode(realigned & 0x7)
	msb := grayDecode((realigned >> 3) & 0x1FF)

	switch lsb {
	case 0, 5, 6:
		return 0, false
	case 7:
		lsb = 5
	}
	if msb%2 == 1 {
		lsb = 6 - lsb
	}

	altFeet := -1300 + 100*float64(lsb) + 500*float64(msb)
	return geo.FeetToMeters(altFeet), true
}

// grayDecode converts a Gray code value to its binary equivalent by
// successively XOR-ing in each less-significant shift of itself.
func grayDecode(gray uint64) uint64 {
	v := gray
	for mask := v >> 1; mask != 0; mask >>= 1 {
		v ^= mask
	}
	return v
}
