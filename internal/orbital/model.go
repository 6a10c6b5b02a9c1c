package orbital

import (
	"math"
	"math/cmplx"

	"github.com/litescript/ls-orbitals/internal/special"
)

// BohrRadius is the length scale of the radial part, in meters.
const BohrRadius = 0.529e-10

// Model evaluates hydrogen-like wavefunctions for a given length scale.
type Model struct {
	// A is the Bohr-radius-like length constant in meters.
	A float64
}

// DefaultModel returns a model using BohrRadius.
func DefaultModel() Model {
	return Model{A: BohrRadius}
}

// Angular returns the angular part Y(l, m, theta, phi).
//
// The Legendre factor uses |m| and the whole sign of m lives in the phasor
// exp(i m phi). This leaves out the Condon-Shortley phase, so odd-m states
// differ in sign from the usual textbook tables.
func Angular(l, m int, theta, phi float64) complex128 {
	am := m
	if am < 0 {
		am = -am
	}
	norm := math.Sqrt(float64(2*l+1) / (4 * math.Pi * special.FactorialRatio(l, am)))
	legendre := special.AssocLegendre(l, am, math.Cos(theta))
	return complex(norm*legendre, 0) * cmplx.Rect(1, float64(m)*phi)
}

// Radial returns the radial part R(n, l, r). The value is real; it is
// returned as complex128 so it composes directly with Angular.
func (md Model) Radial(n, l int, r float64) complex128 {
	na := float64(n) * md.A
	rho := 2 * r / na

	// (2/na)^3 (n-l-1)! / (2n (n+l)!), with (n+l)!/(n-l-1)! = (n-l) * (n+l)!/(n-l)!
	denom := float64(n-l) * special.FactorialRatio(n, l) * float64(2*n)
	norm := math.Sqrt(math.Pow(2/na, 3) / denom)

	value := norm *
		math.Exp(-r/na) *
		math.Pow(rho, float64(l)) *
		special.AssocLaguerre(n-l-1, float64(2*l+1), rho)
	return complex(value, 0)
}

// Psi returns the full wavefunction R(n,l,r) * Y(l,m,theta,phi).
// The quantum numbers are a precondition: callers pass a valid state.
func (md Model) Psi(n, l, m int, r, theta, phi float64) complex128 {
	return md.Radial(n, l, r) * Angular(l, m, theta, phi)
}

// PsiState is Psi for a QuantumState.
func (md Model) PsiState(q QuantumState, r, theta, phi float64) complex128 {
	return md.Psi(q.N, q.L, q.M, r, theta, phi)
}
