package field

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/litescript/ls-orbitals/internal/geom"
	"github.com/litescript/ls-orbitals/internal/orbital"
)

// Dims is the resolution of a spherical sampling volume.
type Dims struct {
	R     int `json:"r"`
	Theta int `json:"theta"`
	Phi   int `json:"phi"`
}

// Volume holds |psi|^2 over a spherical grid. Sample (i, j, k) for radius
// i, polar index j and azimuth index k is at k*(R*Theta) + j*R + i.
type Volume struct {
	Dims    Dims
	RMax    float64
	Density []float64

	r, theta, phi []float64
}

// Linspace returns n evenly spaced values from start, excluding stop.
func Linspace(start, stop float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// DensityVolume evaluates the probability density |psi|^2 for r in
// [0, rMax), theta in [0, pi) and phi in [0, 2pi), all endpoint-exclusive.
func DensityVolume(md orbital.Model, q orbital.QuantumState, dims Dims, rMax float64) (Volume, error) {
	if dims.R < 1 || dims.Theta < 1 || dims.Phi < 1 {
		return Volume{}, fmt.Errorf("density volume: %w: %+v", ErrGridSize, dims)
	}

	v := Volume{
		Dims:    dims,
		RMax:    rMax,
		Density: make([]float64, dims.R*dims.Theta*dims.Phi),
		r:       Linspace(0, rMax, dims.R),
		theta:   Linspace(0, math.Pi, dims.Theta),
		phi:     Linspace(0, 2*math.Pi, dims.Phi),
	}

	for idx := range v.Density {
		i, j, k := v.unindex(idx)
		a := cmplx.Abs(md.PsiState(q, v.r[i], v.theta[j], v.phi[k]))
		v.Density[idx] = a * a
	}
	return v, nil
}

func (v Volume) unindex(idx int) (i, j, k int) {
	i = idx % v.Dims.R
	j = (idx / v.Dims.R) % v.Dims.Theta
	k = idx / (v.Dims.R * v.Dims.Theta)
	return i, j, k
}

// At returns the coordinates of sample (i, j, k).
func (v Volume) At(i, j, k int) geom.Spherical {
	return geom.Spherical{R: v.r[i], Theta: v.theta[j], Phi: v.phi[k]}
}

// Peak returns the largest density in the volume and where it occurs.
func (v Volume) Peak() (float64, geom.Spherical) {
	best, bestIdx := -1.0, 0
	for idx, d := range v.Density {
		if d > best {
			best, bestIdx = d, idx
		}
	}
	if best < 0 {
		return 0, geom.Spherical{}
	}
	return best, v.At(v.unindex(bestIdx))
}
