package sbs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"squitter1090/internal/adsbmsg"
	"squitter1090/internal/rawmsg"
)

func TestWriter_WriteMessage_Identification(t *testing.T) {
	w := NewWriter()
	var buf bytes.Buffer

	ok, err := w.WriteMessage(&buf, adsbmsg.Message{
		ICAO: "4B17E5",
		Kind: rawmsg.KindIdentification,
		Identification: adsbmsg.Identification{
			Callsign: "QUICK123",
			Category: 224,
		},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	fields := strings.Split(strings.TrimSpace(buf.String()), ",")
	assert.Equal(t, "MSG", fields[0])
	assert.Equal(t, "1", fields[1])
	assert.Equal(t, "4B17E5", fields[4])
	assert.Equal(t, "QUICK123", fields[10])
}

func TestWriter_WriteMessage_UnrecognizedKindSkipped(t *testing.T) {
	w := NewWriter()
	var buf bytes.Buffer

	ok, err := w.WriteMessage(&buf, adsbmsg.Message{ICAO: "AAAAAA", Kind: rawmsg.KindUnrecognized})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, buf.String())
}

func TestWriter_WriteMessage_AirbornePosition(t *testing.T) {
	w := NewWriter()
	var buf bytes.Buffer

	ok, err := w.WriteMessage(&buf, adsbmsg.Message{
		ICAO: "4B17E5",
		Kind: rawmsg.KindAirbornePosition,
		AirbornePosition: adsbmsg.AirbornePosition{
			HasAltitude: true,
			AltitudeM:   3000,
		},
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "MSG,3,")
}
