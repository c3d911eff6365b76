package astro

// SunState is a twilight band derived from solar elevation. The values are
// ordered from darkest to brightest, so states compare with < and >.
type SunState int

const (
	Night                SunState = iota // sun more than 18° below the horizon
	AstronomicalTwilight                 // -18° to -12°
	NauticalTwilight                     // -12° to -6°
	CivilTwilight                        // -6° to 0°
	Day                                  // sun at or above the horizon
)

// twilightBand pairs a band's upper elevation bound with its state.
type twilightBand struct {
	below float64
	state SunState
}

// Bands in ascending order. Each band owns elevations strictly below its
// bound; the last entry is the catch-all.
var twilightBands = []twilightBand{
	{-18, Night},
	{-12, AstronomicalTwilight},
	{-6, NauticalTwilight},
	{0, CivilTwilight},
}

// Classify maps a solar elevation (degrees) to its twilight band. Total over
// all inputs: any elevation at or above 0° is Day, including values past the
// physical ±90 range.
func Classify(elDeg float64) SunState {
	for _, b := range twilightBands {
		if elDeg < b.below {
			return b.state
		}
	}
	return Day
}

func (s SunState) String() string {
	switch s {
	case Night:
		return "night"
	case AstronomicalTwilight:
		return "astronomical twilight"
	case NauticalTwilight:
		return "nautical twilight"
	case CivilTwilight:
		return "civil twilight"
	case Day:
		return "day"
	default:
		return "unknown"
	}
}
