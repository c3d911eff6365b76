package track

import (
	"time"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/config"
)

// TraceSample is a single point on the sun's sampled path.
type TraceSample struct {
	Time      time.Time
	Elevation float64
	Azimuth   float64
	State     astro.SunState
}

// SunTrace contains sampled sun positions over a time window, used for the
// sky arc and for locating twilight transitions.
type SunTrace struct {
	Site        config.Site
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Samples     []TraceSample
}

// TraceWindow is the default time span for sun traces (±12 hours from now).
const TraceWindow = 12 * time.Hour

// TraceSampleInterval is the default time between samples.
const TraceSampleInterval = 10 * time.Minute

// ComputeSunTrace samples the sun's position for a site over a ±window span
// centered on 'now'. Fails only if the site coordinates are out of range.
func ComputeSunTrace(site config.Site, now time.Time, window, interval time.Duration) (*SunTrace, error) {
	if window <= 0 {
		window = TraceWindow
	}
	if interval <= 0 {
		interval = TraceSampleInterval
	}

	windowStart := now.Add(-window)
	windowEnd := now.Add(window)

	trace := &SunTrace{
		Site:        site,
		GeneratedAt: now,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	}

	for t := windowStart; !t.After(windowEnd); t = t.Add(interval) {
		pos, err := astro.Calculate(t, site.Latitude, site.Longitude)
		if err != nil {
			return nil, err
		}
		trace.Samples = append(trace.Samples, TraceSample{
			Time:      t,
			Elevation: pos.Elevation,
			Azimuth:   pos.Azimuth,
			State:     pos.State(),
		})
	}

	return trace, nil
}

// Current returns the sample closest to the given time, or nil if the trace
// is empty.
func (t *SunTrace) Current(now time.Time) *TraceSample {
	if len(t.Samples) == 0 {
		return nil
	}

	var closest *TraceSample
	minDelta := time.Duration(1<<63 - 1)

	for i := range t.Samples {
		delta := t.Samples[i].Time.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			closest = &t.Samples[i]
		}
	}

	return closest
}

// MaxElevation returns the highest sample of the trace, or nil if empty.
func (t *SunTrace) MaxElevation() *TraceSample {
	var best *TraceSample
	for i := range t.Samples {
		if best == nil || t.Samples[i].Elevation > best.Elevation {
			best = &t.Samples[i]
		}
	}
	return best
}

// Crossing is a twilight band boundary crossing located on the trace.
type Crossing struct {
	Time      time.Time
	Threshold float64 // boundary elevation in degrees
	Rising    bool
	From      astro.SunState
	To        astro.SunState
}

// Crossings locates every twilight band transition along the trace,
// refining each to sub-second precision by bisecting the bracketing
// sample interval.
func (t *SunTrace) Crossings() []Crossing {
	var out []Crossing

	for i := 1; i < len(t.Samples); i++ {
		prev, next := t.Samples[i-1], t.Samples[i]
		if prev.State == next.State {
			continue
		}

		rising := next.Elevation > prev.Elevation
		threshold := boundaryBetween(prev.State, next.State, rising)

		out = append(out, Crossing{
			Time:      refineCrossing(t.Site, prev.Time, next.Time, threshold),
			Threshold: threshold,
			Rising:    rising,
			From:      prev.State,
			To:        next.State,
		})
	}

	return out
}

// NextTransition returns the first crossing after 'now', or nil.
func (t *SunTrace) NextTransition(now time.Time) *Crossing {
	for _, c := range t.Crossings() {
		if c.Time.After(now) {
			c := c
			return &c
		}
	}
	return nil
}

// stateThresholds are the band boundaries in ascending order. The elevation
// at index i separates SunState(i) from SunState(i+1).
var stateThresholds = []float64{-18, -12, -6, 0}

// boundaryBetween picks the threshold crossed when moving between two bands.
// A coarse sample step can hop more than one band; the boundary nearest the
// destination band is used in that case.
func boundaryBetween(from, to astro.SunState, rising bool) float64 {
	if rising {
		return stateThresholds[int(to)-1]
	}
	return stateThresholds[int(to)]
}

// refineCrossing bisects [t0, t1] until the instant the elevation crosses
// the threshold. Assumes the crossing is bracketed, which Crossings
// guarantees by construction.
func refineCrossing(site config.Site, t0, t1 time.Time, threshold float64) time.Time {
	above := func(tm time.Time) bool {
		pos, err := astro.Calculate(tm, site.Latitude, site.Longitude)
		if err != nil {
			return false
		}
		return pos.Elevation >= threshold
	}

	startAbove := above(t0)
	lo, hi := t0, t1

	for i := 0; i < 24 && hi.Sub(lo) > time.Second; i++ {
		mid := lo.Add(hi.Sub(lo) / 2)
		if above(mid) == startAbove {
			lo = mid
		} else {
			hi = mid
		}
	}

	return lo.Add(hi.Sub(lo) / 2)
}
