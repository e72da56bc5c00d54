package cpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"squitter1090/internal/geo"
)

func TestNl_Equator(t *testing.T) {
	// At the equator Nl(0) is the maximum zone count, 59.
	assert.Equal(t, 59, nl(0))
}

func TestNl_Pole(t *testing.T) {
	assert.Equal(t, 1, nl(0.25)) // 90 degrees, in turns
}

func TestDecode_ConsistentOriginPairDecodesToOrigin(t *testing.T) {
	even := Frame{X: 0, Y: 0}
	odd := Frame{X: 0, Y: 0}
	pos, ok := Decode(even, odd, 0)
	require.True(t, ok)
	assert.Equal(t, int64(0), pos.LatT32)
	assert.Equal(t, int64(0), pos.LonT32)
}

func TestDecode_ResultAlwaysSatisfiesLatitudeInvariant(t *testing.T) {
	// Whatever the (possibly inconsistent) input pair, a successful decode
	// must never violate the [-2^30, 2^30] latitude bound the geo package
	// itself enforces.
	pairs := []struct{ ex, ey, ox, oy float64 }{
		{0.1, 0.1, 0.1, 0.95},
		{0.3, 0.6, 0.3, 0.1},
		{0.5, 0.5, 0.5, 0.5},
	}
	for _, p := range pairs {
		pos, ok := Decode(Frame{X: p.ex, Y: p.ey}, Frame{X: p.ox, Y: p.oy}, 0)
		if ok {
			assert.LessOrEqual(t, pos.LatT32, int64(geo.MaxLatT32))
			assert.GreaterOrEqual(t, pos.LatT32, int64(-geo.MaxLatT32))
		}
	}
}
