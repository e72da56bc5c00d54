// Package sbs writes decoded ADS-B messages and aircraft-state updates in
// BaseStation (SBS-1) line format, adapted from the teacher's
// internal/basestation writer to this spec's message set: only the
// identification (MSG,1), airborne position (MSG,3) and airborne velocity
// (MSG,4) transmission types apply, since surface position and Mode S
// surveillance replies are non-goals here.
package sbs

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"squitter1090/internal/adsbmsg"
	"squitter1090/internal/geo"
	"squitter1090/internal/rawmsg"
)

// BaseStation transmission types this writer emits.
const (
	TransmissionIdentification   = 1
	TransmissionAirbornePosition = 3
	TransmissionAirborneVelocity = 4
)

// Writer formats decoded messages as BaseStation CSV lines and writes them
// to an underlying sink (typically the applog rotator's current file).
type Writer struct {
	sessionID  int
	aircraftID int
}

// NewWriter constructs a BaseStation writer. Session/aircraft/flight IDs
// are fixed at 1, matching the teacher's single-feed assumption.
func NewWriter() *Writer {
	return &Writer{sessionID: 1, aircraftID: 1}
}

// WriteMessage formats m as a BaseStation MSG line and writes it to w,
// returning false (no error) if m's kind has no BaseStation rendering.
func (sw *Writer) WriteMessage(w io.Writer, m adsbmsg.Message) (bool, error) {
	line := sw.format(m)
	if line == "" {
		return false, nil
	}
	_, err := io.WriteString(w, line+"\n")
	if err != nil {
		return false, fmt.Errorf("sbs: failed to write message: %w", err)
	}
	return true, nil
}

func (sw *Writer) format(m adsbmsg.Message) string {
	now := time.Now().UTC()
	dateStr := now.Format("2006/01/02")
	timeStr := now.Format("15:04:05.000")

	var transmissionType int
	callsign, altitude, groundSpeed, track, latitude, longitude := "", "", "", "", "", ""

	switch m.Kind {
	case rawmsg.KindIdentification:
		transmissionType = TransmissionIdentification
		callsign = m.Identification.Callsign

	case rawmsg.KindAirbornePosition:
		transmissionType = TransmissionAirbornePosition
		if m.AirbornePosition.HasAltitude {
			altitude = strconv.Itoa(int(geo.MetersToFeet(m.AirbornePosition.AltitudeM)))
		}

	case rawmsg.KindAirborneVelocity:
		transmissionType = TransmissionAirborneVelocity
		groundSpeed = strconv.FormatFloat(m.AirborneVelocity.SpeedMS/geo.MetersPerSecondPerKnot, 'f', 0, 64)
		track = strconv.FormatFloat(geo.RadiansToTurns(m.AirborneVelocity.AngleRad)*360, 'f', 1, 64)

	default:
		return ""
	}

	fields := []string{
		"MSG",
		strconv.Itoa(transmissionType),
		strconv.Itoa(sw.sessionID),
		strconv.Itoa(sw.aircraftID),
		m.ICAO,
		strconv.Itoa(sw.aircraftID),
		dateStr, timeStr, dateStr, timeStr,
		callsign, altitude, groundSpeed, track, latitude, longitude,
		"", "", "", "", "", "",
	}
	return strings.Join(fields, ",")
}

// WritePosition formats a resolved aircraft position (post-CPR-decode,
// with its geographic coordinates already known) as a BaseStation MSG,3
// line carrying latitude/longitude, for consumers that want the decoded
// position rather than the raw CPR halves.
func (sw *Writer) WritePosition(w io.Writer, icao string, pos geo.Position, altitudeM float64, hasAltitude bool) error {
	now := time.Now().UTC()
	dateStr := now.Format("2006/01/02")
	timeStr := now.Format("15:04:05.000")

	altitude := ""
	if hasAltitude {
		altitude = strconv.Itoa(int(geo.MetersToFeet(altitudeM)))
	}

	latDeg := pos.LatRadians() * 180 / math.Pi
	lonDeg := pos.LonRadians() * 180 / math.Pi

	fields := []string{
		"MSG", strconv.Itoa(TransmissionAirbornePosition),
		strconv.Itoa(sw.sessionID), strconv.Itoa(sw.aircraftID), icao, strconv.Itoa(sw.aircraftID),
		dateStr, timeStr, dateStr, timeStr,
		"", altitude, "", "",
		strconv.FormatFloat(latDeg, 'f', 6, 64),
		strconv.FormatFloat(lonDeg, 'f', 6, 64),
		"", "", "", "", "", "",
	}
	_, err := io.WriteString(w, strings.Join(fields, ",")+"\n")
	if err != nil {
		return fmt.Errorf("sbs: failed to write position: %w", err)
	}
	return nil
}
