// Package field samples an orbital's wavefunction over the camera-oriented
// plane (or a slab around it) and maps each complex sample to a color.
package field

import (
	"errors"
	"fmt"
	"math"
)

// ErrGridSize is returned for grids with a non-positive dimension.
var ErrGridSize = errors.New("grid dimensions must be positive")

// Color is a 4-channel color. Channels are not clamped; values above 1 are
// left for the display side to saturate.
type Color struct {
	R, G, B, A float64
}

// Field is a W x H grid of colors stored row-major: cell (i, j) is at
// index j*W + i.
type Field struct {
	W, H   int
	Colors []Color
}

// NewField allocates a w x h field.
func NewField(w, h int) (Field, error) {
	if w < 1 || h < 1 {
		return Field{}, fmt.Errorf("%w: %dx%d", ErrGridSize, w, h)
	}
	return Field{W: w, H: h, Colors: make([]Color, w*h)}, nil
}

// At returns the color of cell (i, j).
func (f Field) At(i, j int) Color {
	return f.Colors[j*f.W+i]
}

// Clone returns a copy that does not share storage with f.
func (f Field) Clone() Field {
	c := Field{W: f.W, H: f.H, Colors: make([]Color, len(f.Colors))}
	copy(c.Colors, f.Colors)
	return c
}

// Stats summarizes a field.
type Stats struct {
	Peak      float64 // largest R, G or B value
	Mean      float64 // mean of each cell's brightest channel
	NonFinite int     // cells with a NaN or Inf channel
}

// Stats computes summary statistics over the finite cells.
func (f Field) Stats() Stats {
	var s Stats
	finite := 0
	for _, c := range f.Colors {
		if !isFinite(c.R) || !isFinite(c.G) || !isFinite(c.B) {
			s.NonFinite++
			continue
		}
		hi := math.Max(c.R, math.Max(c.G, c.B))
		if hi > s.Peak {
			s.Peak = hi
		}
		s.Mean += hi
		finite++
	}
	if finite > 0 {
		s.Mean /= float64(finite)
	}
	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
