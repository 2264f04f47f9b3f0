// internal/domain/moon/details.go
package moon

// LitSide is the side of the disc that is illuminated, as seen from the northern hemisphere.
type LitSide string

const (
	LitNone  LitSide = "none"
	LitRight LitSide = "right"
	LitFull  LitSide = "full"
	LitLeft  LitSide = "left"
)

// Details is the descriptive text shown for a phase.
type Details struct {
	Name         string
	Description  string
	Energy       string
	Illumination int // nominal percentage
	Lit          LitSide
	Glyph        string
}

var phaseDetails = map[Phase]Details{
	PhaseNewMoon: {
		Name:         "New Moon",
		Description:  "The moon is between Earth and the Sun, invisible to us.",
		Energy:       "New beginnings, setting intentions, planting seeds",
		Illumination: 0,
		Lit:          LitNone,
		Glyph:        "🌑",
	},
	PhaseWaxingCrescent: {
		Name:         "Waxing Crescent",
		Description:  "A sliver of light appears as the moon begins its journey.",
		Energy:       "Hope, intentions, wishes, vulnerability",
		Illumination: 25,
		Lit:          LitRight,
		Glyph:        "🌒",
	},
	PhaseFirstQuarter: {
		Name:         "First Quarter",
		Description:  "Half illuminated, marking the moon's first milestone.",
		Energy:       "Decision making, taking action, commitment",
		Illumination: 50,
		Lit:          LitRight,
		Glyph:        "🌓",
	},
	PhaseWaxingGibbous: {
		Name:         "Waxing Gibbous",
		Description:  "Almost full, building towards peak illumination.",
		Energy:       "Refine, adjust, patience, development",
		Illumination: 75,
		Lit:          LitRight,
		Glyph:        "🌔",
	},
	PhaseFullMoon: {
		Name:         "Full Moon",
		Description:  "The moon is fully illuminated, at peak brightness.",
		Energy:       "Harvest, celebration, heightened emotions, clarity",
		Illumination: 100,
		Lit:          LitFull,
		Glyph:        "🌕",
	},
	PhaseWaningGibbous: {
		Name:         "Waning Gibbous",
		Description:  "Light begins to recede after the full moon.",
		Energy:       "Gratitude, sharing, introspection",
		Illumination: 75,
		Lit:          LitLeft,
		Glyph:        "🌖",
	},
	PhaseLastQuarter: {
		Name:         "Last Quarter",
		Description:  "Half illuminated on the opposite side.",
		Energy:       "Release, forgiveness, letting go",
		Illumination: 50,
		Lit:          LitLeft,
		Glyph:        "🌗",
	},
	PhaseWaningCrescent: {
		Name:         "Waning Crescent",
		Description:  "The final sliver before the new moon.",
		Energy:       "Surrender, rest, reflection, recuperation",
		Illumination: 25,
		Lit:          LitLeft,
		Glyph:        "🌘",
	},
}

// DetailsFor returns the descriptive entry for p. Unknown phases get the full moon entry.
func DetailsFor(p Phase) Details {
	if d, ok := phaseDetails[p]; ok {
		return d
	}
	return phaseDetails[PhaseFullMoon]
}
