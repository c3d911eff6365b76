package astro

import (
	"fmt"
	"math"
	"time"
)

// SolarPosition is the Sun's apparent position in the local horizontal frame.
// It is a plain value: constructed once by Calculate, never mutated, compared
// structurally.
type SolarPosition struct {
	Elevation float64   // degrees above the horizon, -90 to +90
	Azimuth   float64   // degrees clockwise from north, 0 to 360 (exclusive)
	Instant   time.Time // the timestamp used, original offset preserved
	Latitude  float64   // observer latitude in degrees, echoed from input
	Longitude float64   // observer longitude in degrees, echoed from input
}

// OutOfRangeError reports a latitude or longitude outside its valid domain.
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %.4f out of range [%.0f, %.0f]", e.Field, e.Value, e.Min, e.Max)
}

// Calculate computes the Sun's elevation and azimuth for an observer at the
// given latitude/longitude (degrees, north and east positive) at the given
// instant. The instant's UTC offset is honored: two times denoting the same
// UTC instant yield identical results.
//
// Uses a low-order analytic ephemeris (Astronomical Almanac approximation).
// Accuracy: ~0.5 degrees in elevation, ~1 degree in azimuth.
//
// Returns *OutOfRangeError if latitude is outside [-90, 90] or longitude is
// outside [-180, 180]. There is no other failure mode.
func Calculate(instant time.Time, latDeg, lonDeg float64) (SolarPosition, error) {
	if latDeg < -90 || latDeg > 90 {
		return SolarPosition{}, &OutOfRangeError{Field: "latitude", Value: latDeg, Min: -90, Max: 90}
	}
	if lonDeg < -180 || lonDeg > 180 {
		return SolarPosition{}, &OutOfRangeError{Field: "longitude", Value: lonDeg, Min: -180, Max: 180}
	}

	utc := instant.UTC()

	// Solar equatorial coordinates (radians)
	ra, dec := sunEquatorial(utc)

	// Local hour angle
	lst := localSiderealTime(utc, lonDeg)
	ha := degToRad(lst) - ra

	// Equatorial -> horizontal transform
	lat := degToRad(latDeg)
	sinEl := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	el := math.Asin(sinEl)

	// atan2 keeps the azimuth well-defined at the poles, where cos(lat) = 0.
	az := math.Atan2(-math.Sin(ha), math.Tan(dec)*math.Cos(lat)-math.Sin(lat)*math.Cos(ha))

	azDeg := radToDeg(az)
	if azDeg < 0 {
		azDeg += 360
	}

	return SolarPosition{
		Elevation: radToDeg(el),
		Azimuth:   azDeg,
		Instant:   instant,
		Latitude:  latDeg,
		Longitude: lonDeg,
	}, nil
}

// sunEquatorial calculates the Sun's apparent right ascension and declination
// in radians at the given UTC time, using the low-order series from the
// Astronomical Almanac.
func sunEquatorial(t time.Time) (ra, dec float64) {
	// Days since J2000.0
	n := julianDate(t) - 2451545.0

	// Mean longitude of the Sun (degrees)
	L := normalizeAngle360(280.460 + 0.9856474*n)

	// Mean anomaly of the Sun (radians)
	g := degToRad(normalizeAngle360(357.528 + 0.9856003*n))

	// True ecliptic longitude (radians)
	lambda := degToRad(L + 1.915*math.Sin(g) + 0.020*math.Sin(2*g))

	// Obliquity of the ecliptic (radians)
	eps := degToRad(23.439 - 0.0000004*n)

	ra = math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec = math.Asin(math.Sin(eps) * math.Sin(lambda))

	return ra, dec
}

// State classifies the position's elevation into a twilight band.
func (p SolarPosition) State() SunState {
	return Classify(p.Elevation)
}

// Direction returns the unit vector pointing at the Sun. See DirectionVector.
func (p SolarPosition) Direction() Vec3 {
	return DirectionVector(p.Elevation, p.Azimuth)
}

// Orientation returns the rotation basis whose forward axis points at the
// Sun. See Orientation.
func (p SolarPosition) Orientation() Basis {
	return Orientation(p.Elevation, p.Azimuth)
}

// String formats the position for human consumption. The numeric fields are
// the contract; this formatting is a convenience.
func (p SolarPosition) String() string {
	return fmt.Sprintf("el %.2f° az %.2f° at %s (%.4f, %.4f)",
		p.Elevation, p.Azimuth, p.Instant.Format(time.RFC3339), p.Latitude, p.Longitude)
}
