package field

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Policy selects how complex samples become colors.
type Policy string

const (
	// PolicySplitFixed puts |Re psi| in red and |Im psi| in blue, divided by
	// the window's fixed sensitivity divisor. This is the default.
	PolicySplitFixed Policy = "split-fixed"

	// PolicySplitMax is the same split normalized by the largest component
	// seen in the field, so the result lies in [0, 1].
	PolicySplitMax Policy = "split-max"

	// PolicyPhaseWheel spreads the phase of psi over all three channels,
	// scaled by |psi| and the fixed divisor.
	PolicyPhaseWheel Policy = "phase-wheel"
)

var policies = []Policy{PolicySplitFixed, PolicySplitMax, PolicyPhaseWheel}

// Policies lists the available policies in cycling order.
func Policies() []Policy {
	out := make([]Policy, len(policies))
	copy(out, policies)
	return out
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range policies {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown color policy %q", s)
}

// Next returns the policy after p in cycling order.
func (p Policy) Next() Policy {
	for i, q := range policies {
		if q == p {
			return policies[(i+1)%len(policies)]
		}
	}
	return PolicySplitFixed
}

// usesMax reports whether the policy normalizes by the observed maximum
// instead of a fixed divisor.
func (p Policy) usesMax() bool {
	return p == PolicySplitMax
}

// mapSample returns the unnormalized color for one sample, and the
// magnitude that a max-normalizing pass should track for it.
func (p Policy) mapSample(psi complex128) (Color, float64) {
	switch p {
	case PolicyPhaseWheel:
		mag := cmplx.Abs(psi)
		half := cmplx.Phase(psi) / 2
		return Color{
			R: mag * sq(math.Sin(half)),
			G: mag * sq(math.Sin(half+math.Pi/3)),
			B: mag * sq(math.Sin(half+2*math.Pi/3)),
			A: 1,
		}, mag
	default:
		re := math.Abs(real(psi))
		im := math.Abs(imag(psi))
		return Color{R: re, G: 0, B: im, A: 1}, math.Max(re, im)
	}
}

// normalize divides the color channels in place. Split policies scale only
// R and B; the phase wheel scales all three. A zero divisor leaves the field
// untouched.
func (p Policy) normalize(colors []Color, divisor float64) {
	if divisor == 0 {
		return
	}
	if p == PolicyPhaseWheel {
		for i := range colors {
			colors[i].R /= divisor
			colors[i].G /= divisor
			colors[i].B /= divisor
		}
		return
	}
	for i := range colors {
		colors[i].R /= divisor
		colors[i].B /= divisor
	}
}

func sq(x float64) float64 {
	return x * x
}
