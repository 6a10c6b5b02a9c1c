// Package config holds the viewer's tunable constants and loads them from
// YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-orbitals/internal/field"
	"github.com/litescript/ls-orbitals/internal/geom"
	"github.com/litescript/ls-orbitals/internal/orbital"
)

// DefaultPath is where the viewer looks for a config file when none is given.
const DefaultPath = "ls-orbitals.yaml"

// ErrInvalid is returned by Validate for out-of-range values.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of tunables. Fields absent from a loaded file keep
// their Default values.
type Config struct {
	// BohrRadius is the radial length scale in meters.
	BohrRadius float64 `yaml:"bohr_radius"`

	Quantum     orbital.QuantumState `yaml:"quantum"`
	Orientation geom.Orientation     `yaml:"orientation"`
	Window      field.Window         `yaml:"window"`
	Steps       Steps                `yaml:"steps"`
	Grid        Grid                 `yaml:"grid"`
	Mesh        Mesh                 `yaml:"mesh"`
	Render      Render               `yaml:"render"`
}

// Steps are the per-tick factors and deltas applied by interactive input.
type Steps struct {
	ZoomIn          float64 `yaml:"zoom_in"`
	ZoomOut         float64 `yaml:"zoom_out"`
	SensitivityUp   float64 `yaml:"sensitivity_up"`
	SensitivityDown float64 `yaml:"sensitivity_down"`
	Orientation     float64 `yaml:"orientation"`
}

// Grid is the sample resolution used by the mesh and headless exports.
type Grid struct {
	TileW int `yaml:"tile_w"`
	TileH int `yaml:"tile_h"`
}

// Mesh is the physical size of the display surface.
type Mesh struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Render selects the color policy and the depth-averaged variant.
type Render struct {
	Policy          string  `yaml:"policy"`
	Averaged        bool    `yaml:"averaged"`
	DepthSamples    int     `yaml:"depth_samples"`
	AveragedDivisor float64 `yaml:"averaged_divisor"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BohrRadius: orbital.BohrRadius,
		Quantum:    orbital.Ground(),
		Window: field.Window{
			HalfWidth:  1e-9,
			HalfHeight: 1e-9,
			HalfDepth:  2e-10,
			NormConst:  1e14,
		},
		Steps: Steps{
			ZoomIn:          0.99,
			ZoomOut:         1.01,
			SensitivityUp:   0.99,
			SensitivityDown: 1.01,
			Orientation:     0.01,
		},
		Grid: Grid{TileW: 150, TileH: 150},
		Mesh: Mesh{Width: 0.7, Height: 0.7},
		Render: Render{
			Policy:          string(field.PolicySplitFixed),
			DepthSamples:    9,
			AveragedDivisor: field.DefaultAveragedDivisor,
		},
	}
}

// Load reads a YAML config from path on top of Default. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every value is usable.
func (c Config) Validate() error {
	if err := c.Quantum.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := field.ParsePolicy(c.Render.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"bohr_radius", c.BohrRadius},
		{"window.half_width", c.Window.HalfWidth},
		{"window.half_height", c.Window.HalfHeight},
		{"window.norm_const", c.Window.NormConst},
		{"steps.zoom_in", c.Steps.ZoomIn},
		{"steps.zoom_out", c.Steps.ZoomOut},
		{"steps.sensitivity_up", c.Steps.SensitivityUp},
		{"steps.sensitivity_down", c.Steps.SensitivityDown},
		{"steps.orientation", c.Steps.Orientation},
		{"mesh.width", float64(c.Mesh.Width)},
		{"mesh.height", float64(c.Mesh.Height)},
		{"render.averaged_divisor", c.Render.AveragedDivisor},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalid, p.name, p.value)
		}
	}

	if c.Window.HalfDepth < 0 {
		return fmt.Errorf("%w: window.half_depth must be >= 0, got %v", ErrInvalid, c.Window.HalfDepth)
	}
	if c.Grid.TileW < 2 || c.Grid.TileH < 2 {
		return fmt.Errorf("%w: grid must be at least 2x2, got %dx%d", ErrInvalid, c.Grid.TileW, c.Grid.TileH)
	}
	if c.Render.DepthSamples < 1 {
		return fmt.Errorf("%w: render.depth_samples must be >= 1, got %d", ErrInvalid, c.Render.DepthSamples)
	}
	return nil
}

// Model returns the wavefunction model for the configured length scale.
func (c Config) Model() orbital.Model {
	return orbital.Model{A: c.BohrRadius}
}

// Policy returns the configured color policy, falling back to the default
// for an unknown name.
func (c Config) Policy() field.Policy {
	p, err := field.ParsePolicy(c.Render.Policy)
	if err != nil {
		return field.PolicySplitFixed
	}
	return p
}
