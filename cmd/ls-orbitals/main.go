// Command ls-orbitals is a terminal viewer for hydrogen atom orbitals: it
// colors a camera-oriented cross-section of the wavefunction.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orbitals/internal/config"
	"github.com/litescript/ls-orbitals/internal/export"
	"github.com/litescript/ls-orbitals/internal/field"
	"github.com/litescript/ls-orbitals/internal/geom"
	"github.com/litescript/ls-orbitals/internal/logging"
	"github.com/litescript/ls-orbitals/internal/mesh"
	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/state"
	"github.com/litescript/ls-orbitals/internal/ui"
	"github.com/litescript/ls-orbitals/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	asciiMode    bool
	snapshotPath string
	pngPath      string
	gifPath      string
	gifFrames    int
	gifDelay     int
	meshPath     string
)

const (
	asciiCols = 64
	asciiRows = 32

	summaryProfileSamples = 120
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse flags
	configPath := flag.String("config", config.DefaultPath, "YAML config file (missing file uses defaults)")
	writeConfig := flag.String("write-config", "", "Write the effective config to this file and exit")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to this file (TUI logs are discarded otherwise)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	n := flag.Int("n", 1, "Principal quantum number")
	l := flag.Int("l", 0, "Orbital quantum number")
	m := flag.Int("m", 0, "Magnetic quantum number")
	theta := flag.Float64("theta", 0, "Camera polar tilt in radians")
	phi := flag.Float64("phi", 0, "Camera azimuth in radians")
	policy := flag.String("policy", string(field.PolicySplitFixed), "Color policy (split-fixed, split-max, phase-wheel)")
	averaged := flag.Bool("averaged", false, "Average the wavefunction over a slab around the plane")
	grid := flag.Int("grid", 0, "Square sample grid for headless output (0 keeps the config value)")
	halfWidth := flag.Float64("half-width", 0, "Half-extent of the view in meters (0 keeps the config value)")

	flag.BoolVar(&summaryMode, "summary", false, "Print a text summary instead of the TUI")
	flag.BoolVar(&asciiMode, "ascii", false, "Print an ASCII cross-section")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.StringVar(&pngPath, "png", "", "Write the cross-section as a PNG")
	flag.StringVar(&gifPath, "gif", "", "Write a GIF rotating the camera once around z")
	flag.IntVar(&gifFrames, "gif-frames", 36, "Frames in the -gif animation")
	flag.IntVar(&gifDelay, "gif-delay", 8, "Delay between -gif frames in 100ths of a second")
	flag.StringVar(&meshPath, "mesh", "", "Write the colored display mesh as binary")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-orbitals v%s\n", version.Version)
		return nil
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(*logLevel))
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Flags given explicitly override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Quantum.N = *n
		case "l":
			cfg.Quantum.L = *l
		case "m":
			cfg.Quantum.M = *m
		case "theta":
			cfg.Orientation.Theta = *theta
		case "phi":
			cfg.Orientation.Phi = *phi
		case "policy":
			cfg.Render.Policy = *policy
		case "averaged":
			cfg.Render.Averaged = *averaged
		case "grid":
			if *grid > 0 {
				cfg.Grid = config.Grid{TileW: *grid, TileH: *grid}
			}
		case "half-width":
			if *halfWidth > 0 {
				cfg.Window.HalfWidth = *halfWidth
				cfg.Window.HalfHeight = *halfWidth
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, orbital.ErrInvalidState) {
			return fmt.Errorf("%w (need n >= 1, 0 <= l < n, -l <= m <= l)", err)
		}
		return err
	}

	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			return err
		}
		logger.Info("wrote config to %s", *writeConfig)
		return nil
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	session := state.NewSession(cfg)

	// Headless mode: no TUI
	headless := summaryMode || asciiMode || snapshotPath != "" || pngPath != "" || gifPath != "" || meshPath != ""
	if headless {
		return runHeadless(ctx, cfg, session, logger.Named("headless"))
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use -summary, -ascii, -png or -snapshot-path")
	}

	// The TUI owns the terminal.
	if *logFile == "" {
		logger.SetOutput(io.Discard)
	}

	p := tea.NewProgram(ui.New(session, cfg.Model(), logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// runHeadless renders once at the configured grid and writes every
// requested output.
func runHeadless(ctx context.Context, cfg config.Config, session *state.Session, logger *logging.Logger) error {
	md := cfg.Model()

	sampler, err := field.NewSampler(md, cfg.Grid.TileW, cfg.Grid.TileH)
	if err != nil {
		return err
	}

	surface, err := mesh.New(cfg.Mesh.Width, cfg.Mesh.Height, cfg.Grid.TileW, cfg.Grid.TileH)
	if err != nil {
		return err
	}

	f, err := session.Render(sampler, surface)
	if err != nil {
		return err
	}
	snap := session.Snapshot()
	if logger.Enabled(logging.LevelDebug) {
		st := f.Stats()
		logger.Debug("rendered %s at %dx%d in %v (peak %.3f, mean %.3f, non-finite %d)",
			snap.Quantum, f.W, f.H, session.LastRender(), st.Peak, st.Mean, st.NonFinite)
	}

	// Export JSON if requested
	if snapshotPath != "" {
		exp := export.ExportSnapshot(snap, f, sampler.LastPeak(), time.Now())
		if err := writeOutput(snapshotPath, exp.WriteJSON); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	// Print summary if requested
	if summaryMode {
		if err := writeSummary(md, snap, f, sampler.LastPeak()); err != nil {
			return err
		}
	}

	// ASCII view at terminal-friendly resolution
	if asciiMode {
		small, err := field.NewSampler(md, asciiCols, asciiRows)
		if err != nil {
			return err
		}
		af, err := session.Render(small, nil)
		if err != nil {
			return err
		}
		fmt.Println()
		export.WriteASCII(os.Stdout, af, snap.Quantum.String())
	}

	if pngPath != "" {
		if err := writeOutput(pngPath, func(w io.Writer) error { return export.WritePNG(w, f) }); err != nil {
			return err
		}
		logger.Info("wrote %s", pngPath)
	}

	if meshPath != "" {
		if err := writeOutput(meshPath, func(w io.Writer) error { return export.WriteMesh(w, surface) }); err != nil {
			return err
		}
		logger.Info("wrote %s (%d vertices)", meshPath, len(surface.Positions()))
	}

	// GIF last: it reuses the sampler buffer that f points into.
	if gifPath != "" {
		render := func(o geom.Orientation) field.Field {
			if snap.Averaged {
				return sampler.SampleAveraged(snap.Quantum, o, snap.Window, snap.Policy, snap.DepthSamples)
			}
			return sampler.Sample(snap.Quantum, o, snap.Window, snap.Policy)
		}
		start := time.Now()
		g, err := export.OrbitGIF(ctx, render, snap.Orientation, gifFrames, gifDelay)
		if err != nil {
			return fmt.Errorf("render gif: %w", err)
		}
		if err := writeOutput(gifPath, func(w io.Writer) error { return export.WriteGIF(w, g) }); err != nil {
			return err
		}
		logger.Info("wrote %s (%d frames, %.2f ms/frame)", gifPath, gifFrames,
			float64(time.Since(start).Microseconds())/1000/float64(gifFrames))
	}
	return nil
}

func writeSummary(md orbital.Model, snap state.Snapshot, f field.Field, peakPsi float64) error {
	rMax := math.Hypot(snap.Window.HalfWidth, snap.Window.HalfHeight)
	vol, err := field.DensityVolume(md, snap.Quantum, field.Dims{R: 64, Theta: 32, Phi: 32}, rMax)
	if err != nil {
		return err
	}
	peak, at := vol.Peak()

	export.WriteSummary(os.Stdout, export.Summary{
		Quantum:     snap.Quantum,
		Orientation: snap.Orientation,
		Window:      snap.Window,
		Policy:      snap.Policy,
		Averaged:    snap.Averaged,
		Stats:       f.Stats(),
		PeakPsi:     peakPsi,
		Divisor:     snap.Divisor,
		PeakDensity: peak,
		PeakAt:      at,
		Profile:     md.RadialProfile(snap.Quantum.N, snap.Quantum.L, rMax, summaryProfileSamples),
		ProfileRMax: rMax,
		PeakRadius:  md.PeakRadius(snap.Quantum.N, snap.Quantum.L, rMax, summaryProfileSamples),
	})
	return nil
}

// writeOutput runs write against path, or stdout for "-".
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
