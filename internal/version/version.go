// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Orbit GIF export, depth-averaged rendering, YAML config
// 0.2.0 - Phase-wheel and max-normalized color policies, radial profile panel
// 0.1.0 - Initial release: TUI cross-section viewer, headless summary and PNG modes
