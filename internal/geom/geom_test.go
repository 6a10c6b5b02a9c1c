package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecClose(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestPlaneBasis_Orthonormal(t *testing.T) {
	for _, phi := range []float64{0, 0.4, 2, 4.5, -1, 9} {
		for _, theta := range []float64{0, 0.3, math.Pi / 2, 2.2, -0.7} {
			b := PlaneBasis(phi, theta)
			vecs := []mgl64.Vec3{b.X, b.Y, b.Z}
			for i, u := range vecs {
				if math.Abs(u.Len()-1) > 1e-12 {
					t.Errorf("phi=%v theta=%v: |e%d| = %v, want 1", phi, theta, i, u.Len())
				}
				for j := i + 1; j < len(vecs); j++ {
					if d := u.Dot(vecs[j]); math.Abs(d) > 1e-12 {
						t.Errorf("phi=%v theta=%v: e%d.e%d = %v, want 0", phi, theta, i, j, d)
					}
				}
			}
			// Right-handed: X x Y = Z
			if !vecClose(b.X.Cross(b.Y), b.Z, 1e-12) {
				t.Errorf("phi=%v theta=%v: X x Y = %v, want %v", phi, theta, b.X.Cross(b.Y), b.Z)
			}
		}
	}
}

func TestPlaneBasis_Untilted(t *testing.T) {
	b := PlaneBasis(0, 0)
	want := Basis{
		X: mgl64.Vec3{1, 0, 0},
		Y: mgl64.Vec3{0, 1, 0},
		Z: mgl64.Vec3{0, 0, 1},
	}
	if !vecClose(b.X, want.X, 1e-15) || !vecClose(b.Y, want.Y, 1e-15) || !vecClose(b.Z, want.Z, 1e-15) {
		t.Errorf("PlaneBasis(0, 0) = %+v, want %+v", b, want)
	}
}

func TestToCartesian(t *testing.T) {
	b := PlaneBasis(0.7, 1.3)
	got := b.ToCartesian(2, -3, 0.5)
	want := b.X.Mul(2).Add(b.Y.Mul(-3)).Add(b.Z.Mul(0.5))
	if !vecClose(got, want, 1e-12) {
		t.Errorf("ToCartesian = %v, want %v", got, want)
	}

	// The plane (zp = 0) is orthogonal to the normal.
	p := b.ToCartesian(1.5, 4, 0)
	if d := p.Dot(b.Z); math.Abs(d) > 1e-12 {
		t.Errorf("in-plane point has normal component %v", d)
	}
}

func TestToSpherical_RoundTrip(t *testing.T) {
	radii := []float64{1e-11, 0.529e-10, 3e-9, 1, 250}
	thetas := []float64{0.1, 0.5, 1.0, 2.0, 2.8, 3.0}
	phis := []float64{0.3, 1.5, 3.0, 4.5, 6.0}

	for _, r := range radii {
		for _, theta := range thetas {
			for _, phi := range phis {
				in := Spherical{R: r, Theta: theta, Phi: phi}
				out := ToSpherical(FromSpherical(in))

				if math.Abs(out.R-r)/r > 1e-9 {
					t.Errorf("%+v: r = %v", in, out.R)
				}
				if math.Abs(out.Theta-theta)/theta > 1e-9 {
					t.Errorf("%+v: theta = %v", in, out.Theta)
				}
				if math.Abs(out.Phi-phi)/phi > 1e-9 {
					t.Errorf("%+v: phi = %v", in, out.Phi)
				}
			}
		}
	}
}

func TestToSpherical_Axes(t *testing.T) {
	tests := []struct {
		name string
		v    mgl64.Vec3
		want Spherical
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, Spherical{}},
		{"+z", mgl64.Vec3{0, 0, 2}, Spherical{R: 2, Theta: 0, Phi: 0}},
		{"-z", mgl64.Vec3{0, 0, -2}, Spherical{R: 2, Theta: math.Pi, Phi: 0}},
		{"+y", mgl64.Vec3{0, 1, 0}, Spherical{R: 1, Theta: math.Pi / 2, Phi: 0}},
		{"+x", mgl64.Vec3{1, 0, 0}, Spherical{R: 1, Theta: math.Pi / 2, Phi: math.Pi / 2}},
		{"-x", mgl64.Vec3{-1, 0, 0}, Spherical{R: 1, Theta: math.Pi / 2, Phi: 3 * math.Pi / 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToSpherical(tt.v)
			if math.Abs(got.R-tt.want.R) > 1e-12 ||
				math.Abs(got.Theta-tt.want.Theta) > 1e-12 ||
				math.Abs(got.Phi-tt.want.Phi) > 1e-12 {
				t.Errorf("ToSpherical(%v) = %+v, want %+v", tt.v, got, tt.want)
			}
		})
	}
}

func TestToSpherical_PhiRange(t *testing.T) {
	for x := -2.0; x <= 2; x += 0.5 {
		for y := -2.0; y <= 2; y += 0.5 {
			s := ToSpherical(mgl64.Vec3{x, y, 0.3})
			if s.Phi < 0 || s.Phi >= 2*math.Pi {
				t.Errorf("phi out of range for (%v, %v): %v", x, y, s.Phi)
			}
			if math.IsNaN(s.Theta) {
				t.Errorf("theta NaN for (%v, %v)", x, y)
			}
		}
	}
}

func TestOrientation_Basis(t *testing.T) {
	o := Orientation{Theta: 0.4, Phi: 1.9}
	got := o.Basis()
	want := PlaneBasis(1.9, 0.4)
	if got != want {
		t.Errorf("Orientation.Basis() = %+v, want %+v", got, want)
	}

	o.Rotate(0.01, -0.01)
	if math.Abs(o.Theta-0.41) > 1e-15 || math.Abs(o.Phi-1.89) > 1e-15 {
		t.Errorf("after Rotate: %+v", o)
	}
}
