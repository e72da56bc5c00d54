package adsbmsg

import (
	"math"

	"squitter1090/internal/geo"
	"squitter1090/internal/rawmsg"
)

// AirborneVelocity is a decoded type-code 19 message: ground speed and
// track, or airspeed and heading, normalized to speed (m/s) and angle
// (radians).
type AirborneVelocity struct {
	SpeedMS float64
	AngleRad float64 // track for ground-speed subtypes, heading for airspeed subtypes
}

// DecodeAirborneVelocity decodes a type-code 19 raw message. Returns false
// for any of the rejection conditions the spec names: unset velocity
// sentinel, invalid heading, or an unrecognized subtype.
func DecodeAirborneVelocity(m rawmsg.Message) (AirborneVelocity, bool) {
	payload := m.Payload()
	subtype := payload.Bits(48, 51)
	useful := payload.Bits(21, 43)

	switch subtype {
	case 1, 2:
		return decodeGroundSpeed(useful, subtype)
	case 3, 4:
		return decodeAirspeed(useful, subtype)
	default:
		return AirborneVelocity{}, false
	}
}

func decodeGroundSpeed(useful uint64, subtype uint64) (AirborneVelocity, bool) {
	vnsRaw := (useful >> 0) & 0x3FF  // useful[0..10)
	vewRaw := (useful >> 11) & 0x3FF // useful[11..21)

	vns := int64(vnsRaw) - 1
	vew := int64(vewRaw) - 1
	if vns == -1 || vew == -1 {
		return AirborneVelocity{}, false
	}

	speed := math.Hypot(float64(vew), float64(vns))
	unitKnots := 1.0
	if subtype == 2 {
		unitKnots = 4.0
	}
	speed *= unitKnots

	if (useful>>10)&1 == 1 {
		vns = -vns
	}
	if (useful>>21)&1 == 1 {
		vew = -vew
	}
	track := math.Atan2(float64(vew), float64(vns))
	if track < 0 {
		track += 2 * math.Pi
	}

	return AirborneVelocity{
		SpeedMS:  geo.KnotsToMetersPerSecond(speed),
		AngleRad: track,
	}, true
}

func decodeAirspeed(useful uint64, subtype uint64) (AirborneVelocity, bool) {
	if (useful>>21)&1 != 1 {
		return AirborneVelocity{}, false
	}
	headingRaw := (useful >> 11) & 0x3FF
	heading := geo.TurnsToRadians(float64(headingRaw) / 1024) // 2^-10 turns

	speedRaw := int64(useful&0x3FF) - 1
	if speedRaw == -1 {
		return AirborneVelocity{}, false
	}

	unitKnots := 1.0
	if subtype == 4 {
		unitKnots = 4.0
	}

	return AirborneVelocity{
		SpeedMS:  geo.KnotsToMetersPerSecond(float64(speedRaw) * unitKnots),
		AngleRad: heading,
	}, true
}
