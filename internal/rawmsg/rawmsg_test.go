package rawmsg

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"squitter1090/internal/geo"
)

func makeByteString(b []byte) geo.ByteString {
	return geo.NewByteString(b)
}

func TestOf_ValidFrame(t *testing.T) {
	data, err := hex.DecodeString("8D4B17E5205054D4C72CF493014F")
	require.NoError(t, err)

	m, ok := Of(1000, data)
	require.True(t, ok)
	assert.Equal(t, 17, m.DownlinkFormat())
	assert.Equal(t, "4B17E5", m.ICAOAddress())
}

func TestOf_RejectsBadCRC(t *testing.T) {
	data, err := hex.DecodeString("8D4B17E5205054D4C72CF493014F")
	require.NoError(t, err)
	data[5] ^= 0xFF

	_, ok := Of(1000, data)
	assert.False(t, ok)
}

func TestOf_RejectsWrongLength(t *testing.T) {
	_, ok := Of(0, []byte{1, 2, 3})
	assert.False(t, ok)
}

func TestSize(t *testing.T) {
	assert.Equal(t, 14, Size(17<<3))
	assert.Equal(t, 0, Size(4<<3))
}

func TestDispatch(t *testing.T) {
	cases := []struct {
		typeCode byte
		want     Kind
	}{
		{1, KindIdentification},
		{4, KindIdentification},
		{9, KindAirbornePosition},
		{18, KindAirbornePosition},
		{20, KindAirbornePosition},
		{22, KindAirbornePosition},
		{19, KindAirborneVelocity},
		{0, KindUnrecognized},
		{31, KindUnrecognized},
	}
	for _, tc := range cases {
		frame := make([]byte, 14)
		frame[0] = 17 << 3
		frame[4] = tc.typeCode << 3
		m := Message{bytes: makeByteString(frame)}
		assert.Equal(t, tc.want, m.Dispatch(), "type code %d", tc.typeCode)
	}
}
