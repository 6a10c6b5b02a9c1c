// Package state owns the viewer's interactive state: the selected orbital,
// the camera orientation and the sampling window, mutated only through
// explicit input events.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-orbitals/internal/config"
	"github.com/litescript/ls-orbitals/internal/field"
	"github.com/litescript/ls-orbitals/internal/geom"
	"github.com/litescript/ls-orbitals/internal/mesh"
	"github.com/litescript/ls-orbitals/internal/orbital"
)

// InputKind identifies what an input event adjusts.
type InputKind int

const (
	StepN InputKind = iota
	StepL
	StepM
	Phi
	Theta
	Zoom
	Sensitivity
)

func (k InputKind) String() string {
	switch k {
	case StepN:
		return "n"
	case StepL:
		return "l"
	case StepM:
		return "m"
	case Phi:
		return "phi"
	case Theta:
		return "theta"
	case Zoom:
		return "zoom"
	case Sensitivity:
		return "sensitivity"
	default:
		return "unknown"
	}
}

// Input is one discrete event from the input side. Reverse is the shifted
// or negative direction: decrement a quantum number, rotate backwards, zoom
// out, or lower sensitivity.
type Input struct {
	Kind    InputKind
	Reverse bool
}

// EventType classifies entries in the transition log.
type EventType string

const (
	EventQuantum  EventType = "QUANTUM"
	EventPolicy   EventType = "POLICY"
	EventAveraged EventType = "AVERAGED"
)

// Event records a discrete change to the session.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from"`
	To        string    `json:"to"`
}

const defaultMaxEvents = 50

// Session is the single owner of the interactive state.
type Session struct {
	mu sync.RWMutex

	steps config.Steps

	quantum      orbital.QuantumState
	orientation  geom.Orientation
	window       field.Window
	policy       field.Policy
	averaged     bool
	depthSamples int
	divisor      float64

	lastRender time.Duration
	renders    int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// NewSession creates a session seeded from cfg. The caller validates cfg.
func NewSession(cfg config.Config) *Session {
	return newSession(cfg, defaultMaxEvents)
}

func newSession(cfg config.Config, maxEvents int) *Session {
	if maxEvents <= 0 {
		maxEvents = defaultMaxEvents
	}
	depth := cfg.Render.DepthSamples
	if depth < 1 {
		depth = 1
	}
	divisor := cfg.Render.AveragedDivisor
	if divisor <= 0 {
		divisor = field.DefaultAveragedDivisor
	}
	return &Session{
		steps:        cfg.Steps,
		quantum:      cfg.Quantum,
		orientation:  cfg.Orientation,
		window:       cfg.Window,
		policy:       cfg.Policy(),
		averaged:     cfg.Render.Averaged,
		depthSamples: depth,
		divisor:      divisor,
		maxEvents:    maxEvents,
		events:       make([]Event, 0, maxEvents),
	}
}

// Apply performs one input event and reports whether the state changed.
// Quantum steps that would break l < n or |m| <= l are refused.
func (s *Session) Apply(in Input) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch in.Kind {
	case StepN, StepL, StepM:
		before := s.quantum
		if !stepQuantum(&s.quantum, in) {
			return false
		}
		s.addEvent(EventQuantum, before.String(), s.quantum.String())
		return true

	case Phi:
		s.orientation.Rotate(0, s.signed(s.steps.Orientation, in.Reverse))
	case Theta:
		s.orientation.Rotate(s.signed(s.steps.Orientation, in.Reverse), 0)

	case Zoom:
		if in.Reverse {
			s.window.Zoom(s.steps.ZoomOut)
		} else {
			s.window.Zoom(s.steps.ZoomIn)
		}
	case Sensitivity:
		if in.Reverse {
			s.window.ScaleSensitivity(s.steps.SensitivityDown)
		} else {
			s.window.ScaleSensitivity(s.steps.SensitivityUp)
		}

	default:
		return false
	}
	return true
}

func stepQuantum(q *orbital.QuantumState, in Input) bool {
	switch {
	case in.Kind == StepN && !in.Reverse:
		return q.IncN()
	case in.Kind == StepN:
		return q.DecN()
	case in.Kind == StepL && !in.Reverse:
		return q.IncL()
	case in.Kind == StepL:
		return q.DecL()
	case in.Kind == StepM && !in.Reverse:
		return q.IncM()
	default:
		return q.DecM()
	}
}

func (s *Session) signed(v float64, reverse bool) float64 {
	if reverse {
		return -v
	}
	return v
}

// Quantum returns the current quantum numbers.
func (s *Session) Quantum() orbital.QuantumState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quantum
}

// Orientation returns the current camera orientation.
func (s *Session) Orientation() geom.Orientation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orientation
}

// Window returns the current sampling window.
func (s *Session) Window() field.Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window
}

// Policy returns the active color policy.
func (s *Session) Policy() field.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// SetPolicy switches the color policy.
func (s *Session) SetPolicy(p field.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == s.policy {
		return
	}
	s.addEvent(EventPolicy, string(s.policy), string(p))
	s.policy = p
}

// CyclePolicy advances to the next color policy and returns it.
func (s *Session) CyclePolicy() field.Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.policy.Next()
	s.addEvent(EventPolicy, string(s.policy), string(next))
	s.policy = next
	return next
}

// Averaged reports whether the depth-averaged variant is active.
func (s *Session) Averaged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.averaged
}

// ToggleAveraged flips between plane and depth-averaged sampling and
// returns the new setting.
func (s *Session) ToggleAveraged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.averaged = !s.averaged
	s.addEvent(EventAveraged, fmt.Sprint(!s.averaged), fmt.Sprint(s.averaged))
	return s.averaged
}

// Divisor returns the normalization divisor the next render applies:
// the averaged divisor when depth averaging is on, else the window's.
func (s *Session) Divisor() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.effectiveDivisor()
}

func (s *Session) effectiveDivisor() float64 {
	if s.averaged {
		return s.divisor
	}
	return s.window.NormConst
}

// Render samples the current state with sampler and, if surface is not
// nil, copies the result into its colors. The sampler's AveragedDivisor is
// set from the session config. The returned field is the sampler's buffer
// and is overwritten by the next render.
func (s *Session) Render(sampler *field.Sampler, surface *mesh.Surface) (field.Field, error) {
	s.mu.RLock()
	q, o, win, p := s.quantum, s.orientation, s.window, s.policy
	averaged, depth, divisor := s.averaged, s.depthSamples, s.divisor
	s.mu.RUnlock()

	sampler.AveragedDivisor = divisor

	start := time.Now()
	var f field.Field
	if averaged {
		f = sampler.SampleAveraged(q, o, win, p, depth)
	} else {
		f = sampler.Sample(q, o, win, p)
	}
	elapsed := time.Since(start)

	s.mu.Lock()
	s.lastRender = elapsed
	s.renders++
	s.mu.Unlock()

	if surface != nil {
		if err := surface.UpdateColors(f); err != nil {
			return f, fmt.Errorf("render: %w", err)
		}
	}
	return f, nil
}

// LastRender returns how long the most recent Render spent sampling.
func (s *Session) LastRender() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRender
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	Quantum      orbital.QuantumState `json:"quantum"`
	Orientation  geom.Orientation     `json:"orientation"`
	Window       field.Window         `json:"window"`
	Policy       field.Policy         `json:"policy"`
	Averaged     bool                 `json:"averaged"`
	DepthSamples int                  `json:"depth_samples"`
	Divisor      float64              `json:"divisor"`
	Renders      int                  `json:"renders"`
	LastRender   time.Duration        `json:"last_render_ns"`
	Events       []Event              `json:"events,omitempty"`
}

// Snapshot returns a consistent snapshot of current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Quantum:      s.quantum,
		Orientation:  s.orientation,
		Window:       s.window,
		Policy:       s.policy,
		Averaged:     s.averaged,
		DepthSamples: s.depthSamples,
		Divisor:      s.effectiveDivisor(),
		Renders:      s.renders,
		LastRender:   s.lastRender,
		Events:       s.getEventsOrdered(),
	}
}

func (s *Session) addEvent(t EventType, from, to string) {
	e := Event{Type: t, Timestamp: time.Now(), From: from, To: to}
	if len(s.events) < s.maxEvents {
		s.events = append(s.events, e)
	} else {
		s.events[s.eventWriteAt] = e
		s.eventWriteAt = (s.eventWriteAt + 1) % s.maxEvents
	}
}

// getEventsOrdered returns events oldest first.
func (s *Session) getEventsOrdered() []Event {
	if len(s.events) == 0 {
		return nil
	}
	if len(s.events) < s.maxEvents {
		result := make([]Event, len(s.events))
		copy(result, s.events)
		return result
	}
	result := make([]Event, s.maxEvents)
	for i := 0; i < s.maxEvents; i++ {
		result[i] = s.events[(s.eventWriteAt+i)%s.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events, oldest first.
func (s *Session) RecentEvents(n int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
