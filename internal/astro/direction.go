package astro

import "math"

// Vec3 represents a 3D vector in the local sky frame: Y points up at the
// zenith, Z points at geographic north, X points east (right-handed).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// worldUp is the zenith axis of the sky frame.
var worldUp = Vec3{Y: 1}

// worldNorth is the horizon-north axis of the sky frame, used as the up
// reference when a direction is parallel to worldUp.
var worldNorth = Vec3{Z: 1}

// DirectionVector converts elevation/azimuth (degrees) to a unit vector in
// the sky frame. Elevation 0, azimuth 0 gives (0, 0, 1): due north on the
// horizon. Azimuth 90 points east (+X), elevation 90 points at the zenith
// (+Y). The result is unit length by construction.
func DirectionVector(elDeg, azDeg float64) Vec3 {
	el := degToRad(elDeg)
	az := degToRad(azDeg)

	return Vec3{
		X: math.Sin(az) * math.Cos(el),
		Y: math.Sin(el),
		Z: math.Cos(az) * math.Cos(el),
	}
}

// ElAzFromVector recovers elevation and azimuth (degrees) from a direction
// vector. Azimuth is normalized to [0, 360). The vector need not be unit
// length; the zero vector maps to el 0, az 0.
func ElAzFromVector(v Vec3) (elDeg, azDeg float64) {
	u := v.Normalized()
	if u == (Vec3{}) {
		return 0, 0
	}

	elDeg = radToDeg(math.Asin(clamp(u.Y, -1, 1)))
	azDeg = radToDeg(math.Atan2(u.X, u.Z))
	if azDeg < 0 {
		azDeg += 360
	}
	return elDeg, azDeg
}

// Basis is a right-handed orthonormal rotation basis. Forward carries the
// frame's reference forward axis onto a target direction; Right and Up
// complete the frame.
type Basis struct {
	Forward Vec3
	Right   Vec3
	Up      Vec3
}

// Orientation builds the rotation that points the forward axis at the Sun
// direction for the given elevation/azimuth (degrees), keeping Up as close
// to the zenith as possible.
//
// When the direction is parallel to the zenith (elevation ±90) the up
// reference is ill-defined; the basis falls back to horizon north as the
// reference, so the result is always a valid orthonormal frame.
func Orientation(elDeg, azDeg float64) Basis {
	fwd := DirectionVector(elDeg, azDeg)

	right := worldUp.Cross(fwd)
	if right.Norm() < 1e-9 {
		// Looking straight up or down: use north as the up reference.
		right = worldNorth.Cross(fwd)
	}
	right = right.Normalized()
	up := fwd.Cross(right).Normalized()

	return Basis{Forward: fwd, Right: right, Up: up}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
