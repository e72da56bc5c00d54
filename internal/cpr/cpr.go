// Package cpr implements the Compact Position Reporting global decode
// algorithm: reconciling a paired even/odd message into an unambiguous
// geographic position.
package cpr

import (
	"math"

	"squitter1090/internal/geo"
)

const (
	// NzEven and NzOdd are the two latitude zoning constants.
	NzEven = 60
	NzOdd  = 59

	dEven = 1.0 / NzEven
	dOdd  = 1.0 / NzOdd
)

// Frame is one half of a CPR-encoded position pair: normalized longitude
// and latitude in [0, 1), as decoded from a message's raw CPR bits.
type Frame struct {
	X, Y float64
}

// nl computes Nl(lat), the number of longitude zones at the given latitude
// (in turns), via the acos-based formula. Returns 1 at the poles, where A
// is undefined (the polar case: a single longitude zone covers the whole
// band). At lat=0, A is pi/30 up to rounding and floor(2*pi/A) comes out
// 60; a little way off the equator it drops to 59.
func nl(latTurns float64) int {
	latRad := geo.TurnsToRadians(latTurns)
	cosLat := math.Cos(latRad)
	if cosLat == 0 {
		return 1
	}
	arg := 1 - (1-math.Cos(2*math.Pi*dEven))/(cosLat*cosLat)
	if arg < -1 || arg > 1 {
		return 1
	}
	a := math.Acos(arg)
	if a == 0 {
		return 1
	}
	return int(math.Floor(2 * math.Pi / a))
}

// Decode reconciles a paired even/odd CPR frame, plus a most_recent tag
// (0 = even is more recent, 1 = odd), into a geographic position. Returns
// false when the aircraft crossed a latitude band between messages, or the
// resulting position falls outside the valid latitude range.
func Decode(even, odd Frame, mostRecent int) (geo.Position, bool) {
	j := int(math.Round(59*even.Y - 60*odd.Y))

	jEven := j
	jOdd := j
	if j < 0 {
		jEven = j + 60
		jOdd = j + 59
	}

	latEven := dEven * (float64(jEven) + even.Y)
	latOdd := dOdd * (float64(jOdd) + odd.Y)

	nlEven := nl(latEven)
	nlOdd := nl(latOdd)
	if nlEven != nlOdd {
		return geo.Position{}, false
	}

	nlz := nlEven
	var lon float64

	if nlz == 1 {
		if mostRecent == 0 {
			lon = even.X
		} else {
			lon = odd.X
		}
	} else {
		m := int(math.Round(even.X*float64(nlz-1) - odd.X*float64(nlz)))
		mPrime := m
		if m < 0 {
			if mostRecent == 0 {
				mPrime = m + nlz
			} else {
				mPrime = m + (nlz - 1)
			}
		}
		if mostRecent == 0 {
			lon = (1.0 / float64(nlz)) * (float64(mPrime) + even.X)
		} else {
			lon = (1.0 / float64(nlz-1)) * (float64(mPrime) + odd.X)
		}
	}

	var lat float64
	if mostRecent == 0 {
		lat = latEven
	} else {
		lat = latOdd
	}

	if lon >= 0.5 {
		lon -= 1
	}
	if lat >= 0.5 {
		lat -= 1
	}

	latT32 := geo.TurnsToT32(lat)
	lonT32 := geo.TurnsToT32(lon)

	if latT32 < -geo.MaxLatT32 || latT32 > geo.MaxLatT32 {
		return geo.Position{}, false
	}

	pos, err := geo.NewPosition(lonT32, latT32)
	if err != nil {
		return geo.Position{}, false
	}
	return pos, true
}

