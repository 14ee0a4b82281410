// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP API service, YAML config, go-sunrise cross-check suite
// 0.2.0 - TUI dashboard with day navigation, twilight ladder, moon phase
// 0.1.0 - Initial release: Sun/Moon ephemeris core, rise/set solver, JSON output
