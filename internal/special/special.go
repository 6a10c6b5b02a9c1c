// Package special provides the special functions used by the hydrogen
// wavefunction: factorial ratios, associated Legendre functions and
// generalized Laguerre polynomials.
package special

import "math"

// FactorialRatio returns (l+|m|)! / (l-|m|)!.
//
// The ratio is accumulated as a single running product over
// (l-|m|+1)..(l+|m|) instead of dividing two factorials, so it stays finite
// well past the point where l! alone would overflow.
func FactorialRatio(l, m int) float64 {
	if m < 0 {
		m = -m
	}
	ratio := 1.0
	for k := l - m + 1; k <= l+m; k++ {
		ratio *= float64(k)
	}
	return ratio
}

// AssocLegendre evaluates the associated Legendre function P_l^m(x) for
// 0 <= m <= l and -1 <= x <= 1.
//
// No Condon-Shortley phase is applied: P_m^m(x) = (2m-1)!! (1-x^2)^(m/2)
// is always non-negative.
func AssocLegendre(l, m int, x float64) float64 {
	// P_m^m
	pmm := 1.0
	if m > 0 {
		somx2 := (1 - x) * (1 + x)
		if somx2 < 0 {
			somx2 = 0
		}
		root := math.Sqrt(somx2)
		fact := 1.0
		for i := 1; i <= m; i++ {
			pmm *= fact * root
			fact += 2
		}
	}
	if l == m {
		return pmm
	}

	// P_{m+1}^m
	pmmp1 := x * float64(2*m+1) * pmm
	if l == m+1 {
		return pmmp1
	}

	// Upward recurrence in degree:
	// (k-m) P_k^m = x (2k-1) P_{k-1}^m - (k+m-1) P_{k-2}^m
	var pll float64
	for k := m + 2; k <= l; k++ {
		pll = (x*float64(2*k-1)*pmmp1 - float64(k+m-1)*pmm) / float64(k-m)
		pmm = pmmp1
		pmmp1 = pll
	}
	return pll
}

// AssocLaguerre evaluates the generalized Laguerre polynomial L_k^alpha(x).
func AssocLaguerre(k int, alpha, x float64) float64 {
	if k <= 0 {
		return 1
	}
	prev := 1.0
	cur := 1 + alpha - x
	// (j+1) L_{j+1} = (2j+1+alpha-x) L_j - (j+alpha) L_{j-1}
	for j := 1; j < k; j++ {
		next := ((float64(2*j+1)+alpha-x)*cur - (float64(j)+alpha)*prev) / float64(j+1)
		prev = cur
		cur = next
	}
	return cur
}
