package field

import (
	"fmt"
	"math/cmplx"

	"github.com/litescript/ls-orbitals/internal/geom"
	"github.com/litescript/ls-orbitals/internal/orbital"
)

// DefaultAveragedDivisor is the fixed divisor of the depth-averaged variant.
// It was picked by eye for n <= 4 and is not derived from anything.
const DefaultAveragedDivisor = 5e12

// Sampler evaluates an orbital over a fixed grid. It owns its output buffer:
// the Field returned by Sample and SampleAveraged is a view into that buffer
// and is overwritten by the next call. Clone it to keep it.
//
// A Sampler is not safe for concurrent use.
type Sampler struct {
	// Model evaluates the wavefunction.
	Model orbital.Model

	// AveragedDivisor replaces Window.NormConst for fixed-divisor policies
	// in SampleAveraged.
	AveragedDivisor float64

	field    Field
	lastPeak float64
}

// NewSampler creates a sampler for a w x h grid.
func NewSampler(model orbital.Model, w, h int) (*Sampler, error) {
	f, err := NewField(w, h)
	if err != nil {
		return nil, fmt.Errorf("new sampler: %w", err)
	}
	return &Sampler{
		Model:           model,
		AveragedDivisor: DefaultAveragedDivisor,
		field:           f,
	}, nil
}

// Size returns the grid dimensions.
func (s *Sampler) Size() (w, h int) {
	return s.field.W, s.field.H
}

// LastPeak returns the largest |psi| seen by the most recent sample.
func (s *Sampler) LastPeak() float64 {
	return s.lastPeak
}

// Sample evaluates psi on the plane through the origin and colors it.
//
// Cell (i, j) samples plane coordinates xmin + i*dx, ymin + j*dy: the left
// edge of each cell, not its midpoint.
func (s *Sampler) Sample(q orbital.QuantumState, o geom.Orientation, win Window, p Policy) Field {
	return s.sample(q, o, win, p, []float64{0}, win.NormConst)
}

// SampleAveraged averages psi over depth evenly spaced offsets along the
// plane normal in [-HalfDepth, HalfDepth] before coloring. Fixed-divisor
// policies divide by AveragedDivisor instead of the window's NormConst.
func (s *Sampler) SampleAveraged(q orbital.QuantumState, o geom.Orientation, win Window, p Policy, depth int) Field {
	return s.sample(q, o, win, p, depthOffsets(win.HalfDepth, depth), s.AveragedDivisor)
}

func (s *Sampler) sample(q orbital.QuantumState, o geom.Orientation, win Window, p Policy, offsets []float64, divisor float64) Field {
	f := s.field
	basis := o.Basis()
	xmin, xmax, ymin, ymax := win.Bounds()
	dx := (xmax - xmin) / float64(f.W)
	dy := (ymax - ymin) / float64(f.H)
	n := float64(len(offsets))

	var maxComponent, peak float64
	for j := 0; j < f.H; j++ {
		yp := ymin + float64(j)*dy
		for i := 0; i < f.W; i++ {
			xp := xmin + float64(i)*dx

			var psi complex128
			for _, zp := range offsets {
				sph := geom.ToSpherical(basis.ToCartesian(xp, yp, zp))
				psi += s.Model.PsiState(q, sph.R, sph.Theta, sph.Phi)
			}
			if n > 1 {
				psi /= complex(n, 0)
			}

			c, mag := p.mapSample(psi)
			f.Colors[j*f.W+i] = c
			if mag > maxComponent {
				maxComponent = mag
			}
			if a := cmplx.Abs(psi); a > peak {
				peak = a
			}
		}
	}
	s.lastPeak = peak

	if p.usesMax() {
		p.normalize(f.Colors, maxComponent)
	} else {
		p.normalize(f.Colors, divisor)
	}
	return f
}

// depthOffsets returns n evenly spaced offsets spanning [-half, half],
// endpoints included. n < 2 yields the single offset 0.
func depthOffsets(half float64, n int) []float64 {
	if n < 2 {
		return []float64{0}
	}
	out := make([]float64, n)
	step := 2 * half / float64(n-1)
	for k := range out {
		out[k] = -half + float64(k)*step
	}
	return out
}

// SampleField is the allocating form of Sampler.Sample: it returns a field
// owned by the caller.
func SampleField(model orbital.Model, q orbital.QuantumState, o geom.Orientation, win Window, p Policy, w, h int) (Field, error) {
	s, err := NewSampler(model, w, h)
	if err != nil {
		return Field{}, err
	}
	return s.Sample(q, o, win, p), nil
}

// SampleFieldAveraged is the allocating form of Sampler.SampleAveraged
// using DefaultAveragedDivisor.
func SampleFieldAveraged(model orbital.Model, q orbital.QuantumState, o geom.Orientation, win Window, p Policy, w, h, depth int) (Field, error) {
	s, err := NewSampler(model, w, h)
	if err != nil {
		return Field{}, err
	}
	return s.SampleAveraged(q, o, win, p, depth), nil
}
