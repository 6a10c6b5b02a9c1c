package orbital

import (
	"math"
	"math/cmplx"
	"testing"
)

func finite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}

func TestPsi_FiniteForValidStates(t *testing.T) {
	md := DefaultModel()
	radii := []float64{1e-12, 0.5e-10, 2e-10, 1e-9}
	thetas := []float64{0.01, 0.7, math.Pi / 2, 2.5, math.Pi - 0.01}
	phis := []float64{0, 1, math.Pi, 5.5}

	for n := 1; n <= 7; n++ {
		for l := 0; l < n; l++ {
			for m := -l; m <= l; m++ {
				for _, r := range radii {
					for _, th := range thetas {
						for _, ph := range phis {
							if z := md.Psi(n, l, m, r, th, ph); !finite(z) {
								t.Fatalf("Psi(%d,%d,%d,%g,%g,%g) = %v", n, l, m, r, th, ph, z)
							}
						}
					}
				}
			}
		}
	}
}

func TestRadial_GroundStateClosedForm(t *testing.T) {
	md := DefaultModel()
	a := md.A
	for _, r := range []float64{0, 0.3e-10, 1e-10, 3e-10} {
		want := 2 * math.Pow(a, -1.5) * math.Exp(-r/a)
		got := real(md.Radial(1, 0, r))
		if math.Abs(got-want)/want > 1e-12 {
			t.Errorf("Radial(1,0,%g) = %v, want %v", r, got, want)
		}
	}
}

func TestRadial_2s(t *testing.T) {
	md := DefaultModel()
	a := md.A
	r := 1.3e-10
	want := 1 / (2 * math.Sqrt2) * math.Pow(a, -1.5) * (2 - r/a) * math.Exp(-r/(2*a))
	got := real(md.Radial(2, 0, r))
	if math.Abs(got-want)/math.Abs(want) > 1e-12 {
		t.Errorf("Radial(2,0,%g) = %v, want %v", r, got, want)
	}
}

func TestRadial_Normalized(t *testing.T) {
	md := DefaultModel()
	for n := 1; n <= 4; n++ {
		for l := 0; l < n; l++ {
			rMax := float64(n*n) * 12 * md.A
			const steps = 20000
			dr := rMax / steps
			sum := 0.0
			for i := 0; i <= steps; i++ {
				r := float64(i) * dr
				R := real(md.Radial(n, l, r))
				w := 1.0
				if i == 0 || i == steps {
					w = 0.5
				}
				sum += w * r * r * R * R * dr
			}
			if math.Abs(sum-1) > 1e-4 {
				t.Errorf("integral r^2 R(%d,%d)^2 dr = %v, want 1", n, l, sum)
			}
		}
	}
}

func TestRadial_IsReal(t *testing.T) {
	md := DefaultModel()
	if im := imag(md.Radial(3, 1, 2e-10)); im != 0 {
		t.Errorf("imag(Radial) = %v, want 0", im)
	}
}

func TestAngular_KnownValues(t *testing.T) {
	theta, phi := 0.8, 1.1

	y00 := Angular(0, 0, theta, phi)
	if math.Abs(real(y00)-1/math.Sqrt(4*math.Pi)) > 1e-12 || imag(y00) != 0 {
		t.Errorf("Y00 = %v, want 1/sqrt(4pi)", y00)
	}

	y10 := Angular(1, 0, theta, phi)
	want10 := math.Sqrt(3/(4*math.Pi)) * math.Cos(theta)
	if math.Abs(real(y10)-want10) > 1e-12 {
		t.Errorf("Y10 = %v, want %v", y10, want10)
	}

	// No Condon-Shortley phase: Y11 at phi=0 is positive.
	y11 := Angular(1, 1, theta, 0)
	want11 := math.Sqrt(3/(8*math.Pi)) * math.Sin(theta)
	if math.Abs(real(y11)-want11) > 1e-12 {
		t.Errorf("Y11(phi=0) = %v, want %v", y11, want11)
	}
}

func TestAngular_NegativeMIsConjugate(t *testing.T) {
	for l := 1; l <= 4; l++ {
		for m := 1; m <= l; m++ {
			pos := Angular(l, m, 1.2, 0.4)
			neg := Angular(l, -m, 1.2, 0.4)
			if cmplx.Abs(neg-cmplx.Conj(pos)) > 1e-12 {
				t.Errorf("Y(%d,%d) = %v, want conj(Y(%d,%d)) = %v", l, -m, neg, l, m, cmplx.Conj(pos))
			}
		}
	}
}

func TestAngular_Normalized(t *testing.T) {
	const nt, np = 400, 200
	dt := math.Pi / nt
	dp := 2 * math.Pi / np
	for l := 0; l <= 3; l++ {
		for m := -l; m <= l; m++ {
			sum := 0.0
			for i := 0; i < nt; i++ {
				theta := (float64(i) + 0.5) * dt
				for j := 0; j < np; j++ {
					phi := float64(j) * dp
					a := cmplx.Abs(Angular(l, m, theta, phi))
					sum += a * a * math.Sin(theta) * dt * dp
				}
			}
			if math.Abs(sum-1) > 1e-3 {
				t.Errorf("integral |Y(%d,%d)|^2 = %v, want 1", l, m, sum)
			}
		}
	}
}

func TestRadialProfile(t *testing.T) {
	md := DefaultModel()
	profile := md.RadialProfile(1, 0, 5*md.A, 500)
	if len(profile) != 500 {
		t.Fatalf("len = %d, want 500", len(profile))
	}
	if profile[0] != 0 {
		t.Errorf("profile[0] = %v, want 0 at r=0", profile[0])
	}

	// 1s radial probability peaks at the Bohr radius.
	peak := md.PeakRadius(1, 0, 5*md.A, 500)
	if math.Abs(peak-md.A)/md.A > 0.02 {
		t.Errorf("PeakRadius(1,0) = %g, want ~%g", peak, md.A)
	}

	if md.RadialProfile(1, 0, md.A, 0) != nil {
		t.Error("RadialProfile with 0 samples should be nil")
	}
}

func TestPeakRadius_NoSamples(t *testing.T) {
	md := DefaultModel()
	for _, samples := range []int{0, -3} {
		if got := md.PeakRadius(2, 1, 10*md.A, samples); got != 0 {
			t.Errorf("PeakRadius with %d samples = %v, want 0", samples, got)
		}
	}
}
