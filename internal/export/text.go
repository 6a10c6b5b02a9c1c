package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/litescript/ls-orbitals/internal/field"
	"github.com/litescript/ls-orbitals/internal/geom"
	"github.com/litescript/ls-orbitals/internal/orbital"
)

// asciiRamp orders characters from dark to bright.
const asciiRamp = " .:-=+*#%@"

// Shade returns the ramp character for a brightness in [0, 1].
func Shade(v float64) byte {
	v = finite(v)
	if v <= 0 {
		return asciiRamp[0]
	}
	if v >= 1 {
		return asciiRamp[len(asciiRamp)-1]
	}
	return asciiRamp[int(v*float64(len(asciiRamp)-1)+0.5)]
}

// WriteASCII draws f as a boxed grid of ramp characters, brightest channel
// per cell, +y up.
func WriteASCII(w io.Writer, f field.Field, title string) {
	border := strings.Repeat("─", f.W)
	fmt.Fprintf(w, "┌%s┐\n", border)
	for j := f.H - 1; j >= 0; j-- {
		row := make([]byte, f.W)
		for i := 0; i < f.W; i++ {
			c := f.At(i, j)
			row[i] = Shade(math.Max(c.R, math.Max(c.G, c.B)))
		}
		fmt.Fprintf(w, "│%s│\n", row)
	}
	fmt.Fprintf(w, "└%s┘\n", border)
	if title != "" {
		fmt.Fprintln(w, title)
	}
}

// Summary is the input to WriteSummary.
type Summary struct {
	Quantum     orbital.QuantumState
	Orientation geom.Orientation
	Window      field.Window
	Policy      field.Policy
	Averaged    bool
	Stats       field.Stats
	PeakPsi     float64

	// Divisor is the normalization divisor the render applied. Zero
	// falls back to Window.NormConst.
	Divisor float64

	// PeakDensity and PeakAt come from a density volume; zero PeakDensity
	// omits the line.
	PeakDensity float64
	PeakAt      geom.Spherical

	// Profile is r^2 |R|^2 sampled over [0, ProfileRMax). PeakRadius is
	// where it is largest; zero omits the line.
	Profile     []float64
	ProfileRMax float64
	PeakRadius  float64
}

// WriteSummary writes a text report of one render.
func WriteSummary(w io.Writer, s Summary) {
	n := s.Orientation.Basis().Z

	fmt.Fprintf(w, "Orbital %s\n", s.Quantum)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%-14s theta=%.3f phi=%.3f  normal=(%.3f, %.3f, %.3f)\n",
		"Orientation", s.Orientation.Theta, s.Orientation.Phi, n.X(), n.Y(), n.Z())
	fmt.Fprintf(w, "%-14s %.3e x %.3e m (depth ±%.3e m)\n",
		"Window", 2*s.Window.HalfWidth, 2*s.Window.HalfHeight, s.Window.HalfDepth)
	mode := "plane"
	if s.Averaged {
		mode = "depth averaged"
	}
	divisor := s.Divisor
	if divisor == 0 {
		divisor = s.Window.NormConst
	}
	fmt.Fprintf(w, "%-14s %s, %s, divisor %.3e\n", "Coloring", s.Policy, mode, divisor)
	fmt.Fprintf(w, "%-14s peak %.3f  mean %.3f  non-finite %d\n", "Channels", s.Stats.Peak, s.Stats.Mean, s.Stats.NonFinite)
	fmt.Fprintf(w, "%-14s %.4e\n", "Peak |psi|", s.PeakPsi)
	if s.PeakDensity > 0 {
		fmt.Fprintf(w, "%-14s %.4e at r=%.3e m theta=%.3f phi=%.3f\n",
			"Peak |psi|^2", s.PeakDensity, s.PeakAt.R, s.PeakAt.Theta, s.PeakAt.Phi)
	}
	if s.PeakRadius > 0 {
		fmt.Fprintf(w, "%-14s %.3e m\n", "Likeliest r", s.PeakRadius)
	}

	if len(s.Profile) > 1 {
		fmt.Fprintln(w)
		chart := asciigraph.Plot(NormalizeProfile(s.Profile),
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Precision(2),
			asciigraph.Caption(fmt.Sprintf("radial probability r^2|R|^2 (normalized), r in [0, %.2e) m", s.ProfileRMax)))
		fmt.Fprintln(w, chart)
	}
}

// NormalizeProfile rescales a radial profile to a peak of 1. Raw values
// are around 1e10 and swamp the axis labels.
func NormalizeProfile(p []float64) []float64 {
	peak := 0.0
	for _, v := range p {
		peak = math.Max(peak, v)
	}
	out := make([]float64, len(p))
	if peak == 0 {
		return out
	}
	for i, v := range p {
		out[i] = v / peak
	}
	return out
}
