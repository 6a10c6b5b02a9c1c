// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orbitals/internal/export"
	"github.com/litescript/ls-orbitals/internal/field"
	"github.com/litescript/ls-orbitals/internal/logging"
	"github.com/litescript/ls-orbitals/internal/orbital"
	"github.com/litescript/ls-orbitals/internal/state"
)

// Msg types for Bubble Tea
type (
	// StatsTickMsg closes a one-second frame timing window.
	StatsTickMsg time.Time
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	session *state.Session
	model   orbital.Model
	logger  *logging.Logger

	// UI state
	width       int
	height      int
	ready       bool
	showProfile bool
	err         error

	sampler *field.Sampler
	frame   field.Field
	profile []float64

	// Sampling time over the current one-second window
	frames      int
	renderTime  time.Duration
	msPerRender float64
}

// New creates a new root UI model.
func New(session *state.Session, md orbital.Model, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	return Model{
		session: session,
		model:   md,
		logger:  logger.Named("ui"),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return statsTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			p := m.session.CyclePolicy()
			m.logger.Debug("color policy %s", p)
		case "1", "2", "3":
			p, _ := keyPolicy(key)
			m.session.SetPolicy(p)
		case "v":
			on := m.session.ToggleAveraged()
			m.logger.Debug("depth averaging %v", on)
		case "g":
			m.showProfile = !m.showProfile
			m = m.resize()
			m = m.refreshProfile()
		default:
			in, ok := keyInput(key)
			if !ok || !m.session.Apply(in) {
				return m, nil
			}
			if in.Kind == state.StepN || in.Kind == state.StepL || in.Kind == state.Zoom {
				m = m.refreshProfile()
			}
		}
		m = m.render()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m = m.resize()
		m = m.refreshProfile()
		m = m.render()

	case StatsTickMsg:
		if m.frames > 0 {
			m.msPerRender = float64(m.renderTime.Microseconds()) / 1000 / float64(m.frames)
			if m.logger.Enabled(logging.LevelDebug) {
				m.logger.Debug("%.3f ms/render over %d renders, %s", m.msPerRender, m.frames, m.session.Quantum())
			}
		}
		m.frames = 0
		m.renderTime = 0
		return m, statsTickCmd()
	}

	return m, nil
}

// fieldSize returns the sampled grid for the current terminal: one column
// per cell and two rows per line.
func (m Model) fieldSize() (w, h int) {
	lines := m.height - headerLines - footerLines - 2
	if m.showProfile {
		lines -= profileLines
	}
	if lines < 1 {
		lines = 1
	}
	w = m.width
	if w < 2 {
		w = 2
	}
	return w, 2 * lines
}

func (m Model) resize() Model {
	w, h := m.fieldSize()
	if m.sampler != nil {
		if sw, sh := m.sampler.Size(); sw == w && sh == h {
			return m
		}
	}
	s, err := field.NewSampler(m.model, w, h)
	if err != nil {
		m.err = err
		m.logger.Error("resize sampler: %v", err)
		return m
	}
	m.sampler = s
	m.logger.Debug("sampler resized to %dx%d", w, h)
	return m
}

func (m Model) render() Model {
	if m.sampler == nil {
		return m
	}
	f, err := m.session.Render(m.sampler, nil)
	if err != nil {
		m.err = err
		m.logger.Error("render: %v", err)
		return m
	}
	m.frame = f
	m.frames++
	m.renderTime += m.session.LastRender()
	return m
}

func (m Model) refreshProfile() Model {
	if !m.showProfile {
		m.profile = nil
		return m
	}
	q := m.session.Quantum()
	win := m.session.Window()
	samples := m.width - 10
	if samples < 10 {
		samples = 10
	}
	raw := m.model.RadialProfile(q.N, q.L, profileRMax(win), samples)
	m.profile = export.NormalizeProfile(raw)
	return m
}

// profileRMax is the distance from the origin to a corner of the view.
func profileRMax(win field.Window) float64 {
	return math.Hypot(win.HalfWidth, win.HalfHeight)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	snap := m.session.Snapshot()
	var b strings.Builder
	b.WriteString(renderHeader(snap, m.width))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(m.err.Error())
	} else {
		b.WriteString(renderField(m.frame))
	}
	if m.showProfile {
		b.WriteString("\n")
		b.WriteString(renderProfile(m.profile, profileRMax(snap.Window), m.width))
	}
	b.WriteString("\n")
	b.WriteString(renderFooter(m.msPerRender, snap.LastRender, m.session.RecentEvents(1), m.width))
	return b.String()
}

func statsTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return StatsTickMsg(t)
	})
}
