// internal/domain/moon/phase.go
package moon

// Phase is one of the eight named positions of the lunar cycle.
type Phase string

const (
	PhaseNewMoon        Phase = "new_moon"
	PhaseWaxingCrescent Phase = "waxing_crescent"
	PhaseFirstQuarter   Phase = "first_quarter"
	PhaseWaxingGibbous  Phase = "waxing_gibbous"
	PhaseFullMoon       Phase = "full_moon"
	PhaseWaningGibbous  Phase = "waning_gibbous"
	PhaseLastQuarter    Phase = "last_quarter"
	PhaseWaningCrescent Phase = "waning_crescent"
)

var allPhases = [...]Phase{
	PhaseNewMoon,
	PhaseWaxingCrescent,
	PhaseFirstQuarter,
	PhaseWaxingGibbous,
	PhaseFullMoon,
	PhaseWaningGibbous,
	PhaseLastQuarter,
	PhaseWaningCrescent,
}

// quarterPhases are the anchor phases reported as upcoming events.
var quarterPhases = [...]Phase{
	PhaseNewMoon,
	PhaseFirstQuarter,
	PhaseFullMoon,
	PhaseLastQuarter,
}

// AllPhases returns the eight phases in cycle order, starting at the new moon.
func AllPhases() []Phase {
	out := make([]Phase, len(allPhases))
	copy(out, allPhases[:])
	return out
}

// QuarterPhases returns new moon, first quarter, full moon and last quarter.
func QuarterPhases() []Phase {
	out := make([]Phase, len(quarterPhases))
	copy(out, quarterPhases[:])
	return out
}

func (p Phase) index() int {
	for i, v := range allPhases {
		if v == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is one of the eight known phases.
func (p Phase) Valid() bool {
	return p.index() >= 0
}

// IsQuarter reports whether p is one of the four anchor phases.
func (p Phase) IsQuarter() bool {
	for _, q := range quarterPhases {
		if q == p {
			return true
		}
	}
	return false
}

// Next returns the phase that follows p in the cycle. Unknown phases map to the new moon.
func (p Phase) Next() Phase {
	i := p.index()
	if i < 0 {
		return PhaseNewMoon
	}
	return allPhases[(i+1)%len(allPhases)]
}

func (p Phase) String() string {
	return string(p)
}
