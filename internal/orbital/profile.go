package orbital

import "math/cmplx"

// RadialProfile samples the radial probability density r^2 |R(n,l,r)|^2 at
// samples evenly spaced radii in [0, rMax). It returns nil when samples < 1.
func (md Model) RadialProfile(n, l int, rMax float64, samples int) []float64 {
	if samples < 1 {
		return nil
	}
	out := make([]float64, samples)
	step := rMax / float64(samples)
	for i := range out {
		r := float64(i) * step
		R := cmplx.Abs(md.Radial(n, l, r))
		out[i] = r * r * R * R
	}
	return out
}

// PeakRadius returns the radius in [0, rMax) where RadialProfile is largest,
// or 0 when samples < 1.
func (md Model) PeakRadius(n, l int, rMax float64, samples int) float64 {
	if samples < 1 {
		return 0
	}
	profile := md.RadialProfile(n, l, rMax, samples)
	best, bestIdx := -1.0, 0
	for i, v := range profile {
		if v > best {
			best, bestIdx = v, i
		}
	}
	return float64(bestIdx) * rMax / float64(samples)
}
