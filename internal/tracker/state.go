// Package tracker implements the state accumulator (component I) and the
// state manager (component J): the live, observable set of known aircraft
// built up from the stream of typed messages.
package tracker

import (
	"math"

	"squitter1090/internal/adsbmsg"
	"squitter1090/internal/cpr"
	"squitter1090/internal/geo"
	"squitter1090/internal/icaotype"
	"squitter1090/internal/rawmsg"
)

// staleCPRPairNs is the maximum age gap, in nanoseconds, between paired
// even/odd CPR messages before they are considered unpaireable (10s).
const staleCPRPairNs = 10 * 1e9

// purgeAgeNs is the staleness window purge uses: an aircraft is dropped
// once its last message is this far behind the manager's last update (60s).
const purgeAgeNs = 60 * 1e9

// negInf is the sentinel "unknown" value for altitude and velocity fields,
// per the data model.
var negInf = math.Inf(-1)

// TrajectoryPoint is one recorded (position, altitude) point in an
// aircraft's flight path.
type TrajectoryPoint struct {
	TimestampNs int64
	Position    geo.Position
	AltitudeM   float64
}

// Metadata is the external aircraft-database record looked up once when an
// aircraft's accumulator is created.
type Metadata struct {
	Registration   string
	TypeDesignator string
	Model          string
	Description    string
	WakeCategory   string
}

// State is the live, observable record of one aircraft.
type State struct {
	ICAO     string
	Metadata Metadata
	HasMeta  bool

	LastMessageTs int64

	Callsign string
	Category int

	HasPosition bool
	Position    geo.Position

	HasAltitude bool
	AltitudeM   float64 // negative infinity sentinel until known

	HasVelocity bool
	SpeedMS     float64 // negative infinity sentinel until known
	AngleRad    float64

	Trajectory []TrajectoryPoint
}

// newState builds a State with its altitude/speed sentinels set to the
// "unknown" representation (negative infinity), per the data model.
func newState(icao string, meta Metadata, hasMeta bool) *State {
	return &State{
		ICAO:      icao,
		Metadata:  meta,
		HasMeta:   hasMeta,
		AltitudeM: negInf,
		SpeedMS:   negInf,
	}
}

// setAltitude records a new altitude. If the last trajectory point was
// produced by this same message timestamp, it is updated in place rather
// than duplicated; this is the "altitude refines a point already appended
// for position" path.
func (s *State) setAltitude(ts int64, altitudeM float64) {
	s.HasAltitude = true
	s.AltitudeM = altitudeM

	if s.HasPosition {
		if n := len(s.Trajectory); n > 0 && s.Trajectory[n-1].TimestampNs == ts {
			s.Trajectory[n-1].AltitudeM = altitudeM
		}
	}
}

// setPosition records a new position. A trajectory point is appended
// exactly when altitude is already known; if the last point shares this
// message's timestamp it is updated in place instead of duplicated, so the
// trajectory holds at most one entry per message.
func (s *State) setPosition(ts int64, pos geo.Position) {
	s.HasPosition = true
	s.Position = pos

	if !s.HasAltitude {
		return
	}

	if n := len(s.Trajectory); n > 0 && s.Trajectory[n-1].TimestampNs == ts {
		s.Trajectory[n-1].Position = pos
		return
	}
	s.Trajectory = append(s.Trajectory, TrajectoryPoint{TimestampNs: ts, Position: pos, AltitudeM: s.AltitudeM})
}

type cprFrame struct {
	frame cpr.Frame
	ts    int64
}

// Accumulator holds the single aircraft state it updates and the two most
// recent airborne position messages, indexed by parity.
type Accumulator struct {
	state   *State
	lastPos [2]*cprFrame // indexed by parity: 0 = even, 1 = odd
}

// NewAccumulator constructs an accumulator for a freshly-seen aircraft.
// meta/hasMeta come from a one-time external aircraft-database lookup.
func NewAccumulator(icao string, meta Metadata, hasMeta bool) *Accumulator {
	return &Accumulator{state: newState(icao, meta, hasMeta)}
}

// State returns the aircraft state this accumulator updates.
func (a *Accumulator) State() *State {
	return a.state
}

// Update applies a typed message to the aircraft state per the
// accumulator's per-variant dispatch rules.
func (a *Accumulator) Update(m adsbmsg.Message) {
	a.state.LastMessageTs = m.TimestampNs

	switch m.Kind {
	case rawmsg.KindIdentification:
		if _, err := icaotype.NewCallsign(m.Identification.Callsign); err != nil {
			return
		}
		a.state.Callsign = m.Identification.Callsign
		a.state.Category = m.Identification.Category
	case rawmsg.KindAirbornePosition:
		a.updatePosition(m)
	case rawmsg.KindAirborneVelocity:
		a.state.HasVelocity = true
		a.state.SpeedMS = m.AirborneVelocity.SpeedMS
		a.state.AngleRad = m.AirborneVelocity.AngleRad
	}
}

func (a *Accumulator) updatePosition(m adsbmsg.Message) {
	pos := m.AirbornePosition
	if pos.HasAltitude {
		a.state.setAltitude(m.TimestampNs, pos.AltitudeM)
	}

	parity := pos.Parity
	a.lastPos[parity] = &cprFrame{frame: cpr.Frame{X: pos.X, Y: pos.Y}, ts: m.TimestampNs}

	other := a.lastPos[1-parity]
	if other == nil {
		return
	}
	if abs64(a.lastPos[0].ts-a.lastPos[1].ts) > staleCPRPairNs {
		return
	}

	decoded, ok := cpr.Decode(a.lastPos[0].frame, a.lastPos[1].frame, parity)
	if !ok {
		return
	}

	a.state.setPosition(m.TimestampNs, decoded)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// MetadataLookup resolves an ICAO address to its external aircraft-database
// record, looked up once at accumulator-creation time.
type MetadataLookup interface {
	Lookup(icao string) (Metadata, bool)
}

// Manager indexes accumulators by ICAO address (component J): it creates
// accumulators for newly-seen aircraft, applies incoming messages, exposes
// the observable set of aircraft whose position has been determined at
// least once, and purges aircraft that have gone quiet.
type Manager struct {
	lookup        MetadataLookup
	accumulators  map[string]*Accumulator
	known         map[string]*State
	lastUpdateTs  int64
}

// NewManager constructs an empty Manager. lookup may be nil, in which case
// newly-seen aircraft are created with no metadata.
func NewManager(lookup MetadataLookup) *Manager {
	return &Manager{
		lookup:       lookup,
		accumulators: make(map[string]*Accumulator),
		known:        make(map[string]*State),
	}
}

// UpdateWithMessage applies a decoded typed message to the aircraft it
// names, creating a new accumulator (and looking up metadata) if this is
// the first message seen for that ICAO address.
func (mgr *Manager) UpdateWithMessage(m adsbmsg.Message) {
	if _, err := icaotype.NewICAOAddress(m.ICAO); err != nil {
		return
	}

	mgr.lastUpdateTs = m.TimestampNs

	acc, ok := mgr.accumulators[m.ICAO]
	if !ok {
		meta, hasMeta := Metadata{}, false
		if mgr.lookup != nil {
			meta, hasMeta = mgr.lookup.Lookup(m.ICAO)
		}
		acc = NewAccumulator(m.ICAO, meta, hasMeta)
		mgr.accumulators[m.ICAO] = acc
	}

	acc.Update(m)

	if acc.State().HasPosition {
		if _, alreadyKnown := mgr.known[m.ICAO]; !alreadyKnown {
			mgr.known[m.ICAO] = acc.State()
		}
	}
}

// Purge removes every aircraft, from both the accumulator map and the
// known set, whose last message is older than the manager's last update
// timestamp by more than 60 seconds.
func (mgr *Manager) Purge() {
	cutoff := mgr.lastUpdateTs - purgeAgeNs
	for icao, acc := range mgr.accumulators {
		if acc.State().LastMessageTs < cutoff {
			delete(mgr.accumulators, icao)
			delete(mgr.known, icao)
		}
	}
}

// Known returns a snapshot of the currently-known aircraft set, keyed by
// ICAO address. The returned map is a shallow copy; callers must not rely
// on it reflecting subsequent updates.
func (mgr *Manager) Known() map[string]*State {
	out := make(map[string]*State, len(mgr.known))
	for k, v := range mgr.known {
		out[k] = v
	}
	return out
}

// Accumulator returns the accumulator tracking icao, if one exists.
func (mgr *Manager) Accumulator(icao string) (*Accumulator, bool) {
	acc, ok := mgr.accumulators[icao]
	return acc, ok
}
