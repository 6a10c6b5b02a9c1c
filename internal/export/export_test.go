package export

import (
	"bytes"
	"context"
	"encoding/json"
	"image/gif"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-orbitals/internal/config"
	"github.com/litescript/ls-orbitals/internal/field"
	"github.com/litescript/ls-orbitals/internal/geom"
	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/state"
)

func testField(t *testing.T) field.Field {
	t.Helper()
	f, err := field.NewField(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	f.Colors[0] = field.Color{R: 1, G: 0, B: 0, A: 1}   // (0,0) bottom-left
	f.Colors[5] = field.Color{R: 0, G: 0, B: 4.5, A: 1} // (2,1) top-right, saturates
	return f
}

func TestExportSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Quantum = orbital.QuantumState{N: 2, L: 1, M: -1}
	s := state.NewSession(cfg)
	s.CyclePolicy()

	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	export := ExportSnapshot(s.Snapshot(), testField(t), 3.5e14, at)

	if export.Timestamp != at {
		t.Errorf("Timestamp = %v, want %v", export.Timestamp, at)
	}
	if export.Label != "n=2, l=1, m=-1" {
		t.Errorf("Label = %q", export.Label)
	}
	if export.Grid != (GridExport{W: 3, H: 2}) {
		t.Errorf("Grid = %+v", export.Grid)
	}
	if export.Stats.PeakChannel != 4.5 || export.Stats.PeakPsi != 3.5e14 {
		t.Errorf("Stats = %+v", export.Stats)
	}
	if export.Normal != [3]float64{0, 0, 1} {
		t.Errorf("Normal = %v, want (0,0,1) for the untilted plane", export.Normal)
	}
	if len(export.Events) != 1 {
		t.Errorf("Events = %+v, want the policy change", export.Events)
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"quantum", "window", "policy", "stats", "plane_normal"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing %q", key)
		}
	}
	if decoded["policy"] != "split-max" {
		t.Errorf("policy = %v", decoded["policy"])
	}
}

func TestRGB8_Saturates(t *testing.T) {
	tests := []struct {
		in      field.Color
		r, g, b uint8
	}{
		{field.Color{R: 0, G: 0, B: 0}, 0, 0, 0},
		{field.Color{R: 1, G: 1, B: 1}, 255, 255, 255},
		{field.Color{R: 7, G: -2, B: 0.5}, 255, 0, 128},
	}
	for _, tt := range tests {
		r, g, b := RGB8(tt.in)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("RGB8(%+v) = %d,%d,%d, want %d,%d,%d", tt.in, r, g, b, tt.r, tt.g, tt.b)
		}
	}
	if got := Hex(field.Color{R: 2, B: 1}); got != "#ff00ff" {
		t.Errorf("Hex = %q, want #ff00ff", got)
	}
}

func TestImage_FlipsRows(t *testing.T) {
	img := Image(testField(t))
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	// Cell (0,0) is the bottom row of the image.
	if c := img.NRGBAAt(0, 1); c.R != 255 || c.B != 0 || c.A != 255 {
		t.Errorf("bottom-left = %+v", c)
	}
	if c := img.NRGBAAt(2, 0); c.B != 255 || c.R != 0 {
		t.Errorf("top-right = %+v", c)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testField(t)); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
}

func TestOrbitGIF(t *testing.T) {
	sampler, err := field.NewSampler(orbital.DefaultModel(), 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	q := orbital.QuantumState{N: 2, L: 1, M: 1}
	win := field.Window{HalfWidth: 5e-10, HalfHeight: 5e-10, NormConst: 1e14}

	var phis []float64
	render := func(o geom.Orientation) field.Field {
		phis = append(phis, o.Phi)
		return sampler.Sample(q, o, win, field.PolicySplitMax)
	}

	g, err := OrbitGIF(context.Background(), render, geom.Orientation{Theta: 1}, 4, 5)
	if err != nil {
		t.Fatalf("OrbitGIF: %v", err)
	}
	if len(g.Image) != 4 || len(g.Delay) != 4 || g.Delay[0] != 5 {
		t.Fatalf("frames = %d, delays = %v", len(g.Image), g.Delay)
	}
	if len(phis) != 4 || phis[0] != 0 || phis[3] >= 6.3 {
		t.Errorf("phi sweep = %v, want 4 steps over [0, 2pi)", phis)
	}

	var buf bytes.Buffer
	if err := WriteGIF(&buf, g); err != nil {
		t.Fatalf("WriteGIF: %v", err)
	}
	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Image) != 4 {
		t.Errorf("decoded frames = %d", len(decoded.Image))
	}
}

func TestOrbitGIF_Errors(t *testing.T) {
	render := func(geom.Orientation) field.Field { return field.Field{} }
	if _, err := OrbitGIF(context.Background(), render, geom.Orientation{}, 0, 5); err == nil {
		t.Error("zero frames should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := OrbitGIF(ctx, render, geom.Orientation{}, 3, 5); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		in   float64
		want byte
	}{
		{-1, ' '},
		{0, ' '},
		{0.5, '+'},
		{1, '@'},
		{12, '@'},
	}
	for _, tt := range tests {
		if got := Shade(tt.in); got != tt.want {
			t.Errorf("Shade(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteASCII(t *testing.T) {
	var buf bytes.Buffer
	WriteASCII(&buf, testField(t), "n=1, l=0, m=0")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "┌") || !strings.HasSuffix(lines[3], "┘") {
		t.Error("ASCII view should have box borders")
	}
	if lines[1] != "│  @│" {
		t.Errorf("top row = %q", lines[1])
	}
	if lines[2] != "│@  │" {
		t.Errorf("bottom row = %q", lines[2])
	}
	if lines[4] != "n=1, l=0, m=0" {
		t.Errorf("title = %q", lines[4])
	}
}

func TestWriteSummary(t *testing.T) {
	md := orbital.DefaultModel()
	q := orbital.QuantumState{N: 3, L: 1, M: 0}
	rMax := 2e-9

	var buf bytes.Buffer
	WriteSummary(&buf, Summary{
		Quantum:     q,
		Window:      config.Default().Window,
		Policy:      field.PolicyPhaseWheel,
		Averaged:    true,
		Stats:       field.Stats{Peak: 0.9, Mean: 0.1},
		PeakPsi:     1.2e14,
		PeakDensity: 3e28,
		PeakAt:      geom.Spherical{R: 4e-10},
		Profile:     md.RadialProfile(q.N, q.L, rMax, 64),
		ProfileRMax: rMax,
	})
	out := buf.String()

	for _, want := range []string{"Orbital n=3, l=1, m=0", "phase-wheel", "depth averaged", "Peak |psi|^2", "radial probability"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummary_DivisorAndPeakRadius(t *testing.T) {
	md := orbital.DefaultModel()
	rMax := 5 * md.A

	var buf bytes.Buffer
	WriteSummary(&buf, Summary{
		Quantum:    orbital.Ground(),
		Window:     config.Default().Window,
		Policy:     field.PolicySplitFixed,
		Averaged:   true,
		Divisor:    5e12,
		PeakRadius: md.PeakRadius(1, 0, rMax, 500),
	})
	out := buf.String()

	if !strings.Contains(out, "depth averaged, divisor 5.000e+12") {
		t.Errorf("summary should show the averaged divisor:\n%s", out)
	}
	if strings.Contains(out, "1.000e+14") {
		t.Errorf("summary shows the window divisor while averaging:\n%s", out)
	}
	if !strings.Contains(out, "Likeliest r    5.29") {
		t.Errorf("summary missing 1s likeliest radius near a0:\n%s", out)
	}
}

func TestWriteSummary_NoProfile(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, Summary{Quantum: orbital.Ground(), Window: config.Default().Window, Policy: field.PolicySplitFixed})
	out := buf.String()
	if !strings.Contains(out, "divisor 1.000e+14") {
		t.Errorf("zero Divisor should fall back to the window's:\n%s", out)
	}
	if strings.Contains(out, "radial probability") || strings.Contains(out, "Peak |psi|^2") || strings.Contains(out, "Likeliest r") {
		t.Errorf("optional sections should be omitted:\n%s", out)
	}
}

func TestNormalizeProfile(t *testing.T) {
	got := NormalizeProfile([]float64{0, 2e10, 4e10, 1e10})
	want := []float64{0, 0.5, 1, 0.25}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeProfile[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if z := NormalizeProfile([]float64{0, 0}); z[0] != 0 || z[1] != 0 {
		t.Errorf("all-zero profile = %v", z)
	}
}
