// Package mesh builds the flat display surface the sampled field is painted
// onto: a lattice of vertices with fixed positions and triangle indices, and
// a color attribute that is rewritten in place each frame.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/litescript/ls-orbitals/internal/field"
)

var (
	// ErrGridSize is returned for lattices with fewer than 2x2 vertices.
	ErrGridSize = errors.New("mesh needs at least 2x2 vertices")

	// ErrFieldMismatch is returned when a field does not match the lattice.
	ErrFieldMismatch = errors.New("field dimensions do not match mesh")
)

// FloatsPerVertex is the stride of VertexData: x, y, z, r, g, b.
const FloatsPerVertex = 6

// Surface is a tileW x tileH vertex lattice centered on the origin in the
// z = 0 plane. Vertex (i, j) is at index j*tileW + i, the same layout as
// field.Field, so cell colors map one-to-one onto vertices.
type Surface struct {
	Width, Height float32
	TileW, TileH  int

	positions []mgl32.Vec3
	colors    []mgl32.Vec4
	indices   []uint32
}

// New builds the lattice geometry. Positions and indices never change after
// this returns.
func New(width, height float32, tileW, tileH int) (*Surface, error) {
	if tileW < 2 || tileH < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridSize, tileW, tileH)
	}

	s := &Surface{
		Width:     width,
		Height:    height,
		TileW:     tileW,
		TileH:     tileH,
		positions: make([]mgl32.Vec3, tileW*tileH),
		colors:    make([]mgl32.Vec4, tileW*tileH),
		indices:   make([]uint32, 0, (tileW-1)*(tileH-1)*6),
	}

	xGap := width / float32(tileW)
	yGap := height / float32(tileH)
	for j := 0; j < tileH; j++ {
		for i := 0; i < tileW; i++ {
			s.positions[j*tileW+i] = mgl32.Vec3{
				(float32(i)+0.5)*xGap - width/2,
				(float32(j)+0.25)*yGap - height/2,
				0,
			}
		}
	}

	idx := func(i, j int) uint32 { return uint32(j*tileW + i) }
	for j := 0; j < tileH-1; j++ {
		for i := 0; i < tileW-1; i++ {
			s.indices = append(s.indices,
				idx(i, j), idx(i, j+1), idx(i+1, j),
				idx(i+1, j), idx(i, j+1), idx(i+1, j+1),
			)
		}
	}
	return s, nil
}

// UpdateColors copies f into the color attribute. Positions and indices are
// left alone.
func (s *Surface) UpdateColors(f field.Field) error {
	if f.W != s.TileW || f.H != s.TileH || len(f.Colors) != len(s.colors) {
		return fmt.Errorf("%w: field %dx%d, mesh %dx%d", ErrFieldMismatch, f.W, f.H, s.TileW, s.TileH)
	}
	for k, c := range f.Colors {
		s.colors[k] = mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
	}
	return nil
}

// Positions returns the vertex positions. The slice is shared; do not modify.
func (s *Surface) Positions() []mgl32.Vec3 { return s.positions }

// Colors returns the current vertex colors. The slice is shared and is
// rewritten by UpdateColors.
func (s *Surface) Colors() []mgl32.Vec4 { return s.colors }

// Indices returns the triangle list. The slice is shared; do not modify.
func (s *Surface) Indices() []uint32 { return s.indices }

// VertexData returns positions and colors interleaved as
// x, y, z, r, g, b per vertex, ready for a single vertex buffer upload.
func (s *Surface) VertexData() []float32 {
	out := make([]float32, 0, len(s.positions)*FloatsPerVertex)
	for k, p := range s.positions {
		c := s.colors[k]
		out = append(out, p.X(), p.Y(), p.Z(), c.X(), c.Y(), c.Z())
	}
	return out
}
