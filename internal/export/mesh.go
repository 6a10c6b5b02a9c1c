package export

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/litescript/ls-orbitals/internal/mesh"
)

// meshMagic starts every mesh file.
const meshMagic = "ORBM"

// WriteMesh writes s as little-endian binary: the magic "ORBM", vertex and
// index counts as uint32, the interleaved vertex data (x, y, z, r, g, b
// float32 per vertex), then the uint32 triangle indices.
func WriteMesh(w io.Writer, s *mesh.Surface) error {
	vertices := s.VertexData()
	indices := s.Indices()

	header := struct {
		Magic    [4]byte
		Vertices uint32
		Indices  uint32
	}{
		Vertices: uint32(len(vertices) / mesh.FloatsPerVertex),
		Indices:  uint32(len(indices)),
	}
	copy(header.Magic[:], meshMagic)

	for _, part := range []interface{}{header, vertices, indices} {
		if err := binary.Write(w, binary.LittleEndian, part); err != nil {
			return fmt.Errorf("write mesh: %w", err)
		}
	}
	return nil
}
