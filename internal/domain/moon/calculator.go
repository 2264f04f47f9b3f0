// internal/domain/moon/calculator.go
package moon

import (
	"math"
	"sort"
	"time"
)

// SynodicMonth is the average length of a lunar cycle in days.
const SynodicMonth = 29.53059

// Epoch is a calendar day known to be a new moon.
var Epoch = time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC)

// Boundary closes a half-open interval [previous UpperBound, UpperBound) of the cycle.
type Boundary struct {
	UpperBound float64 // in cycle days
	Phase      Phase
}

// boundaries partitions [0, SynodicMonth) into the eight phases.
// Upper bounds are strictly increasing and the last one equals SynodicMonth.
var boundaries = [...]Boundary{
	{UpperBound: 1.85, Phase: PhaseNewMoon},
	{UpperBound: 7.38, Phase: PhaseWaxingCrescent},
	{UpperBound: 9.23, Phase: PhaseFirstQuarter},
	{UpperBound: 14.77, Phase: PhaseWaxingGibbous},
	{UpperBound: 16.61, Phase: PhaseFullMoon},
	{UpperBound: 22.15, Phase: PhaseWaningGibbous},
	{UpperBound: 24, Phase: PhaseLastQuarter},
	{UpperBound: SynodicMonth, Phase: PhaseWaningCrescent},
}

// Boundaries returns a copy of the phase boundary table in cycle order.
func Boundaries() []Boundary {
	out := make([]Boundary, len(boundaries))
	copy(out, boundaries[:])
	return out
}

// Calculator derives lunar phases from calendar dates relative to a reference new moon.
// The zero value is not usable; use Default or NewCalculator.
type Calculator struct {
	epoch        time.Time
	synodicMonth float64
}

// Default is the calculator used by the package level functions.
var Default = NewCalculator(Epoch, SynodicMonth)

// NewCalculator returns a Calculator anchored at the calendar day of epoch.
func NewCalculator(epoch time.Time, synodicMonth float64) Calculator {
	return Calculator{epoch: CalendarDay(epoch), synodicMonth: synodicMonth}
}

// CalendarDay truncates t to midnight UTC of its own calendar day.
// The year, month and day are read in t's location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// elapsedDays counts days from the epoch to t without going through time.Duration,
// which saturates about 292 years out.
func (c Calculator) elapsedDays(t time.Time) float64 {
	secs := float64(t.Unix() - c.epoch.Unix())
	nanos := float64(t.Nanosecond() - c.epoch.Nanosecond())
	return (secs + nanos/1e9) / 86400
}

func (c Calculator) normalize(elapsedDays float64) float64 {
	return math.Mod(math.Mod(elapsedDays, c.synodicMonth)+c.synodicMonth, c.synodicMonth)
}

// CycleDay returns the position of date's calendar day within the lunar cycle, in [0, synodic month).
func (c Calculator) CycleDay(date time.Time) float64 {
	elapsed := c.elapsedDays(CalendarDay(date))
	return c.normalize(elapsed)
}

// PhaseForCycleDay maps a cycle position to its phase using the boundary table.
func (c Calculator) PhaseForCycleDay(cycleDay float64) Phase {
	for _, b := range boundaries {
		if cycleDay < b.UpperBound {
			return b.Phase
		}
	}
	return boundaries[len(boundaries)-1].Phase
}

// PhaseForDate returns the lunar phase of date's calendar day.
func (c Calculator) PhaseForDate(date time.Time) Phase {
	return c.PhaseForCycleDay(c.CycleDay(date))
}

// Illumination returns the lit percentage of the disc at the exact instant t.
func (c Calculator) Illumination(t time.Time) float64 {
	elapsed := c.elapsedDays(t)
	fraction := c.normalize(elapsed) / c.synodicMonth
	return (1.0 - math.Cos(2.0*math.Pi*fraction)) / 2.0 * 100.0
}

// Event is the next occurrence of a quarter phase.
type Event struct {
	Phase    Phase
	Date     time.Time // calendar day, midnight UTC
	DaysAway int
}

// targetCycleDay is the lower bound of p's interval in the boundary table.
func targetCycleDay(p Phase) float64 {
	lower := 0.0
	for _, b := range boundaries {
		if b.Phase == p {
			return lower
		}
		lower = b.UpperBound
	}
	return 0
}

// NextPhaseEvents returns the next new moon, first quarter, full moon and last quarter
// after from, ordered by date.
//
// An event whose target coincides with from's cycle day is reported one full cycle later.
// Day counts are rounded to the nearest whole day, so an event can land on from itself.
func (c Calculator) NextPhaseEvents(from time.Time) []Event {
	day := CalendarDay(from)
	current := c.CycleDay(day)

	events := make([]Event, 0, len(quarterPhases))
	for _, p := range quarterPhases {
		daysUntil := targetCycleDay(p) - current
		if daysUntil <= 0 {
			daysUntil += c.synodicMonth
		}
		away := int(math.Round(daysUntil))
		events = append(events, Event{
			Phase:    p,
			Date:     day.AddDate(0, 0, away),
			DaysAway: away,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

// PhaseForDate returns the phase of date using the default calculator.
func PhaseForDate(date time.Time) Phase {
	return Default.PhaseForDate(date)
}

// NextPhaseEvents returns upcoming quarter events using the default calculator.
func NextPhaseEvents(from time.Time) []Event {
	return Default.NextPhaseEvents(from)
}
