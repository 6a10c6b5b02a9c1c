package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/litescript/ls-orbitals/internal/state"
	"github.com/litescript/ls-orbitals/internal/version"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	stateStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD"))
)

const (
	headerLines  = 2
	footerLines  = 2
	profileLines = 10
)

// renderHeader shows the selected orbital and the camera. The plane normal
// e_z stands in for an orientation gizmo.
func renderHeader(snap state.Snapshot, width int) string {
	o := snap.Orientation
	n := o.Basis().Z

	title := titleStyle.Render("ls-orbitals") + dimStyle.Render(" v"+version.Version)
	line1 := title + "  " + stateStyle.Render(snap.Quantum.String())

	mode := "plane"
	if snap.Averaged {
		mode = fmt.Sprintf("avg×%d", snap.DepthSamples)
	}
	line2 := dimStyle.Render(fmt.Sprintf(
		"θ=%+.2f φ=%+.2f  e_z=(%+.2f,%+.2f,%+.2f)  view %.2e m  div %.2e  %s/%s",
		o.Theta, o.Phi, n.X(), n.Y(), n.Z(),
		2*snap.Window.HalfWidth, snap.Divisor, snap.Policy, mode))

	return truncate(line1, width) + "\n" + truncate(line2, width)
}

// renderFooter shows sampling time per render, the latest transition and
// key help.
func renderFooter(msPerRender float64, lastRender time.Duration, events []state.Event, width int) string {
	var status string
	if msPerRender > 0 {
		status = accentStyle.Render(fmt.Sprintf("%.2f ms/render", msPerRender))
	} else {
		status = accentStyle.Render(fmt.Sprintf("%.2f ms", float64(lastRender.Microseconds())/1000))
	}
	if len(events) > 0 {
		e := events[len(events)-1]
		status += dimStyle.Render(fmt.Sprintf("  %s: %s → %s", strings.ToLower(string(e.Type)), e.From, e.To))
	}
	return truncate(status, width) + "\n" + truncate(dimStyle.Render(helpText), width)
}

// renderProfile plots the radial probability density across the view.
func renderProfile(profile []float64, rMax float64, width int) string {
	if len(profile) < 2 {
		return ""
	}
	w := width - 10
	if w < 10 {
		w = 10
	}
	chart := asciigraph.Plot(profile,
		asciigraph.Height(profileLines-2),
		asciigraph.Width(w),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("r²|R|² for r in [0, %.2e) m", rMax)))
	return graphStyle.Render(chart)
}

// truncate cuts s to width visible cells.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
