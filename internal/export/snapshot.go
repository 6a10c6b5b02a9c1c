// Package export writes rendered orbitals out of the viewer: JSON
// snapshots, PNG and GIF images, and plain-text views for headless use.
package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-orbitals/internal/field"
	"github.com/litescript/ls-orbitals/internal/geom"
	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/state"
	"github.com/litescript/ls-orbitals/internal/version"
)

// SnapshotExport is the JSON-serializable representation of one render.
type SnapshotExport struct {
	Timestamp   time.Time            `json:"timestamp"`
	Version     string               `json:"version"`
	Quantum     orbital.QuantumState `json:"quantum"`
	Label       string               `json:"label"`
	Orientation geom.Orientation     `json:"orientation"`
	Normal      [3]float64           `json:"plane_normal"`
	Window      field.Window         `json:"window"`
	Policy      field.Policy         `json:"policy"`
	Averaged    bool                 `json:"averaged"`
	Grid        GridExport           `json:"grid"`
	Stats       StatsExport          `json:"stats"`
	Events      []state.Event        `json:"events,omitempty"`
}

// GridExport is the sampled grid size.
type GridExport struct {
	W int `json:"w"`
	H int `json:"h"`
}

// StatsExport summarizes the colors and the raw wavefunction.
type StatsExport struct {
	PeakChannel float64 `json:"peak_channel"`
	MeanChannel float64 `json:"mean_channel"`
	NonFinite   int     `json:"non_finite"`
	PeakPsi     float64 `json:"peak_abs_psi"`
}

// ExportSnapshot converts session state and its rendered field to an
// exportable form. peakPsi is the sampler's LastPeak for that render.
func ExportSnapshot(snap state.Snapshot, f field.Field, peakPsi float64, at time.Time) *SnapshotExport {
	st := f.Stats()
	n := snap.Orientation.Basis().Z
	return &SnapshotExport{
		Timestamp:   at,
		Version:     version.Version,
		Quantum:     snap.Quantum,
		Label:       snap.Quantum.String(),
		Orientation: snap.Orientation,
		Normal:      [3]float64{n.X(), n.Y(), n.Z()},
		Window:      snap.Window,
		Policy:      snap.Policy,
		Averaged:    snap.Averaged,
		Grid:        GridExport{W: f.W, H: f.H},
		Stats: StatsExport{
			PeakChannel: st.Peak,
			MeanChannel: st.Mean,
			NonFinite:   st.NonFinite,
			PeakPsi:     peakPsi,
		},
		Events: snap.Events,
	}
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
