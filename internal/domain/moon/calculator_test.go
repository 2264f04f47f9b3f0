package moon

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBoundaries_PartitionCycle(t *testing.T) {
	table := Boundaries()
	require.Len(t, table, 8)

	prev := 0.0
	for i, b := range table {
		assert.Greater(t, b.UpperBound, prev, "bound %d must increase", i)
		assert.Equal(t, AllPhases()[i], b.Phase)
		prev = b.UpperBound
	}
	assert.Equal(t, SynodicMonth, table[len(table)-1].UpperBound)
}

func TestPhaseForDate_Fixtures(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want Phase
	}{
		{"epoch", day(2024, time.January, 11), PhaseNewMoon},
		{"one day after epoch", day(2024, time.January, 12), PhaseNewMoon},
		{"two days after epoch", day(2024, time.January, 13), PhaseWaxingCrescent},
		{"day 7", day(2024, time.January, 18), PhaseWaxingCrescent},
		{"day 8", day(2024, time.January, 19), PhaseFirstQuarter},
		{"day 14", day(2024, time.January, 25), PhaseWaxingGibbous},
		{"day 15", day(2024, time.January, 26), PhaseFullMoon},
		{"day 23", day(2024, time.February, 3), PhaseLastQuarter},
		{"day 24", day(2024, time.February, 4), PhaseWaningCrescent},
		{"day 29", day(2024, time.February, 9), PhaseWaningCrescent},
		{"day 30 wraps", day(2024, time.February, 10), PhaseNewMoon},
		{"day before epoch", day(2024, time.January, 10), PhaseWaningCrescent},
		{"15 days before epoch", day(2023, time.December, 27), PhaseWaxingGibbous},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PhaseForDate(tc.date))
		})
	}
}

func TestPhaseForDate_IgnoresTimeOfDay(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	late := time.Date(2024, time.January, 25, 23, 30, 0, 0, est)

	assert.Equal(t, day(2024, time.January, 25), CalendarDay(late))
	assert.Equal(t, PhaseWaxingGibbous, PhaseForDate(late))
}

func TestPhaseForDate_Total(t *testing.T) {
	start := day(2014, time.January, 1)
	for i := 0; i < 365*20; i++ {
		p := PhaseForDate(start.AddDate(0, 0, i))
		if !p.Valid() {
			t.Fatalf("invalid phase %q for day %d", p, i)
		}
	}
}

func TestCycleDay_Range(t *testing.T) {
	start := day(2000, time.January, 1)
	for i := 0; i < 365*40; i += 7 {
		cd := Default.CycleDay(start.AddDate(0, 0, i))
		assert.GreaterOrEqual(t, cd, 0.0)
		assert.Less(t, cd, SynodicMonth)
	}
}

func TestPhaseForDate_Periodic(t *testing.T) {
	// Thirty days overshoots a cycle by under half a day, so a phase either
	// repeats or advances to its successor.
	start := day(2024, time.March, 1)
	same := 0
	for i := 0; i < 365; i++ {
		d := start.AddDate(0, 0, i)
		p := PhaseForDate(d)
		later := PhaseForDate(d.AddDate(0, 0, 30))
		if later == p {
			same++
			continue
		}
		assert.Equal(t, p.Next(), later, "date %s", d.Format("2006-01-02"))
	}
	assert.Greater(t, same, 280)
}

func TestCycleDay_FarFromEpoch(t *testing.T) {
	for _, start := range []time.Time{day(1700, time.March, 7), day(2500, time.June, 1), day(9000, time.January, 1)} {
		t.Run(start.Format("2006"), func(t *testing.T) {
			seen := map[Phase]bool{}
			minLit, maxLit := 100.0, 0.0
			for i := 0; i < 60; i++ {
				d := start.AddDate(0, 0, i)
				cd := Default.CycleDay(d)
				step := math.Mod(Default.CycleDay(d.AddDate(0, 0, 1))-cd+SynodicMonth, SynodicMonth)
				require.InDelta(t, 1.0, step, 1e-6, "date %s", d.Format("2006-01-02"))

				p := PhaseForDate(d)
				later := PhaseForDate(d.AddDate(0, 0, 30))
				if later != p {
					assert.Equal(t, p.Next(), later, "date %s", d.Format("2006-01-02"))
				}
				if i < 30 {
					seen[p] = true
				}

				lit := Default.Illumination(d)
				minLit = math.Min(minLit, lit)
				maxLit = math.Max(maxLit, lit)
			}
			assert.Len(t, seen, len(AllPhases()))
			assert.Less(t, minLit, 5.0)
			assert.Greater(t, maxLit, 95.0)
		})
	}

	assert.NotEqual(t, Default.CycleDay(day(1700, time.March, 7)), Default.CycleDay(day(1700, time.March, 14)))
}

func TestPhaseForCycleDay_Edges(t *testing.T) {
	assert.Equal(t, PhaseNewMoon, Default.PhaseForCycleDay(0))
	assert.Equal(t, PhaseWaxingCrescent, Default.PhaseForCycleDay(1.85))
	assert.Equal(t, PhaseLastQuarter, Default.PhaseForCycleDay(23.999))
	assert.Equal(t, PhaseWaningCrescent, Default.PhaseForCycleDay(24))
	assert.Equal(t, PhaseWaningCrescent, Default.PhaseForCycleDay(SynodicMonth))
}

func TestNextPhaseEvents_FromEpoch(t *testing.T) {
	events := NextPhaseEvents(Epoch)
	require.Len(t, events, 4)

	assert.Equal(t, Event{Phase: PhaseFirstQuarter, Date: day(2024, time.January, 18), DaysAway: 7}, events[0])
	assert.Equal(t, Event{Phase: PhaseFullMoon, Date: day(2024, time.January, 26), DaysAway: 15}, events[1])
	assert.Equal(t, Event{Phase: PhaseLastQuarter, Date: day(2024, time.February, 2), DaysAway: 22}, events[2])
	// a new moon due today is reported for the next cycle
	assert.Equal(t, Event{Phase: PhaseNewMoon, Date: day(2024, time.February, 10), DaysAway: 30}, events[3])
}

func TestNextPhaseEvents_MidCycle(t *testing.T) {
	events := NextPhaseEvents(day(2024, time.January, 25))
	require.Len(t, events, 4)

	got := []Phase{events[0].Phase, events[1].Phase, events[2].Phase, events[3].Phase}
	assert.Equal(t, []Phase{PhaseFullMoon, PhaseLastQuarter, PhaseNewMoon, PhaseFirstQuarter}, got)
	assert.Equal(t, day(2024, time.January, 26), events[0].Date)
	assert.Equal(t, 1, events[0].DaysAway)
	assert.Equal(t, day(2024, time.February, 17), events[3].Date)
}

func TestNextPhaseEvents_RoundsToSameDay(t *testing.T) {
	// 44 days after the epoch the cycle day is ~14.47, 0.3 days short of the full moon.
	from := day(2024, time.February, 24)
	events := NextPhaseEvents(from)

	require.Equal(t, PhaseFullMoon, events[0].Phase)
	assert.Equal(t, 0, events[0].DaysAway)
	assert.True(t, events[0].Date.Equal(from))
}

func TestNextPhaseEvents_Properties(t *testing.T) {
	start := day(2023, time.June, 1)
	for i := 0; i < 400; i++ {
		from := start.AddDate(0, 0, i)
		events := NextPhaseEvents(from)
		require.Len(t, events, 4)

		seen := map[Phase]bool{}
		for j, e := range events {
			assert.True(t, e.Phase.IsQuarter())
			assert.False(t, seen[e.Phase], "duplicate phase %s", e.Phase)
			seen[e.Phase] = true
			assert.False(t, e.Date.Before(from))
			assert.LessOrEqual(t, e.DaysAway, 30)
			if j > 0 {
				assert.False(t, e.Date.Before(events[j-1].Date))
			}
		}
	}
}

func TestIllumination(t *testing.T) {
	assert.InDelta(t, 0, Default.Illumination(Epoch), 0.001)

	half := time.Duration(SynodicMonth / 2 * 24 * float64(time.Hour))
	assert.InDelta(t, 100, Default.Illumination(Epoch.Add(half)), 0.001)

	quarter := time.Duration(SynodicMonth / 4 * 24 * float64(time.Hour))
	assert.InDelta(t, 50, Default.Illumination(Epoch.Add(quarter)), 0.01)
}

func TestNewCalculator_TruncatesEpoch(t *testing.T) {
	c := NewCalculator(time.Date(2024, time.January, 11, 18, 0, 0, 0, time.UTC), SynodicMonth)
	assert.Equal(t, PhaseNewMoon, c.PhaseForDate(Epoch))
	assert.Equal(t, 0.0, c.CycleDay(Epoch))
}
