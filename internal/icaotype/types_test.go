package icaotype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewICAOAddress(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", "4B17E5", false},
		{"lowercase rejected", "4b17e5", true},
		{"too short", "4B17E", true},
		{"too long", "4B17E5A", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewICAOAddress(tc.in)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewCallsign(t *testing.T) {
	cs, err := NewCallsign("")
	require.NoError(t, err)
	assert.Equal(t, Callsign(""), cs)

	_, err = NewCallsign("UAL123!")
	assert.Error(t, err)

	cs, err = NewCallsign("UAL123")
	require.NoError(t, err)
	assert.Equal(t, Callsign("UAL123"), cs)
}

func TestNewDescription_EmptyAllowed(t *testing.T) {
	d, err := NewDescription("")
	require.NoError(t, err)
	assert.Equal(t, Description(""), d)

	d, err = NewDescription("L2J")
	require.NoError(t, err)
	assert.Equal(t, Description("L2J"), d)

	_, err = NewDescription("Z2J")
	assert.Error(t, err)
}

func TestNewRegistration(t *testing.T) {
	_, err := NewRegistration("PP-ABC")
	require.NoError(t, err)

	_, err = NewRegistration("")
	assert.Error(t, err)
}
