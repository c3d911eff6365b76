package astro

import (
	"math"
	"testing"
	"time"
)

func TestDirectionVectorKnownDirections(t *testing.T) {
	tests := []struct {
		name   string
		el, az float64
		want   Vec3
	}{
		{"north on horizon", 0, 0, Vec3{0, 0, 1}},
		{"east on horizon", 0, 90, Vec3{1, 0, 0}},
		{"south on horizon", 0, 180, Vec3{0, 0, -1}},
		{"west on horizon", 0, 270, Vec3{-1, 0, 0}},
		{"zenith", 90, 0, Vec3{0, 1, 0}},
		{"nadir", -90, 0, Vec3{0, -1, 0}},
		{"northeast 45 up", 45, 45, Vec3{0.5, math.Sqrt2 / 2, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DirectionVector(tt.el, tt.az)
			if d := got.Sub(tt.want).Norm(); d > 1e-9 {
				t.Errorf("DirectionVector(%v, %v) = %+v, want %+v", tt.el, tt.az, got, tt.want)
			}
		})
	}
}

func TestDirectionVectorUnitNorm(t *testing.T) {
	for el := -90.0; el <= 90; el += 7.5 {
		for az := 0.0; az < 360; az += 12.5 {
			v := DirectionVector(el, az)
			if math.Abs(v.Norm()-1) > 1e-5 {
				t.Errorf("|DirectionVector(%v, %v)| = %v, want 1", el, az, v.Norm())
			}
		}
	}
}

func TestElAzRoundTrip(t *testing.T) {
	// Recovering el/az from the direction vector reproduces the pair for all
	// non-degenerate inputs.
	for el := -89.0; el <= 89; el += 8 {
		for az := 0.0; az < 360; az += 15 {
			gotEl, gotAz := ElAzFromVector(DirectionVector(el, az))

			if math.Abs(gotEl-el) > 1e-6 {
				t.Errorf("round trip el: got %v, want %v", gotEl, el)
			}

			dAz := math.Abs(gotAz - az)
			if dAz > 180 {
				dAz = 360 - dAz
			}
			if dAz > 1e-6 {
				t.Errorf("round trip az at el=%v: got %v, want %v", el, gotAz, az)
			}
		}
	}
}

func TestElAzFromVectorEdgeCases(t *testing.T) {
	// Zero vector maps to the origin pair rather than NaN.
	if el, az := ElAzFromVector(Vec3{}); el != 0 || az != 0 {
		t.Errorf("ElAzFromVector(zero) = (%v, %v), want (0, 0)", el, az)
	}

	// Non-unit input is normalized first.
	el, az := ElAzFromVector(Vec3{0, 0, 10})
	if el != 0 || az != 0 {
		t.Errorf("ElAzFromVector(0,0,10) = (%v, %v), want (0, 0)", el, az)
	}

	// Azimuth always comes back in [0, 360).
	_, az = ElAzFromVector(Vec3{-1, 0, -1})
	if az < 0 || az >= 360 {
		t.Errorf("azimuth out of range: %v", az)
	}
}

func TestOrientationOrthonormal(t *testing.T) {
	check := func(t *testing.T, el, az float64) {
		t.Helper()
		b := Orientation(el, az)

		for name, v := range map[string]Vec3{
			"forward": b.Forward, "right": b.Right, "up": b.Up,
		} {
			if math.Abs(v.Norm()-1) > 1e-9 {
				t.Errorf("el=%v az=%v: |%s| = %v, want 1", el, az, name, v.Norm())
			}
		}

		if d := math.Abs(b.Forward.Dot(b.Right)); d > 1e-9 {
			t.Errorf("el=%v az=%v: forward·right = %v", el, az, d)
		}
		if d := math.Abs(b.Forward.Dot(b.Up)); d > 1e-9 {
			t.Errorf("el=%v az=%v: forward·up = %v", el, az, d)
		}
		if d := math.Abs(b.Right.Dot(b.Up)); d > 1e-9 {
			t.Errorf("el=%v az=%v: right·up = %v", el, az, d)
		}

		// Forward must be the direction vector itself.
		if d := b.Forward.Sub(DirectionVector(el, az)).Norm(); d > 1e-9 {
			t.Errorf("el=%v az=%v: forward deviates from direction by %v", el, az, d)
		}
	}

	for el := -85.0; el <= 85; el += 17 {
		for az := 0.0; az < 360; az += 45 {
			check(t, el, az)
		}
	}
}

func TestOrientationZenithFallback(t *testing.T) {
	// Straight up: the up reference degenerates; the fallback must still
	// produce a valid basis instead of failing.
	for _, el := range []float64{90, -90} {
		b := Orientation(el, 0)

		if math.Abs(b.Right.Norm()-1) > 1e-9 || math.Abs(b.Up.Norm()-1) > 1e-9 {
			t.Errorf("el=%v: degenerate basis: %+v", el, b)
		}
		if d := math.Abs(b.Forward.Dot(b.Right)); d > 1e-9 {
			t.Errorf("el=%v: forward·right = %v", el, d)
		}
		if math.IsNaN(b.Right.X) || math.IsNaN(b.Up.X) {
			t.Errorf("el=%v: NaN in basis: %+v", el, b)
		}
	}
}

func TestSolarPositionDelegates(t *testing.T) {
	pos, err := Calculate(time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC), 48.8566, 2.3522)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := pos.Direction(), DirectionVector(pos.Elevation, pos.Azimuth); got != want {
		t.Errorf("Direction() = %+v, want %+v", got, want)
	}
	if got, want := pos.Orientation(), Orientation(pos.Elevation, pos.Azimuth); got != want {
		t.Errorf("Orientation() = %+v, want %+v", got, want)
	}
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	if got := a.Add(b); got != (Vec3{5, -3, 9}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 7, -3}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Cross(b); got != (Vec3{27, 6, -13}) {
		t.Errorf("Cross = %+v", got)
	}
	if got := (Vec3{3, 4, 0}).Norm(); got != 5 {
		t.Errorf("Norm = %v", got)
	}
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("Normalized(zero) = %+v", got)
	}
}
