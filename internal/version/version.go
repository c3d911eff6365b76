// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Twilight transition events, JSON snapshot export, rotated file logging
// 0.2.0 - Sky arc view, sun trace with refined rise/set crossings
// 0.1.0 - Initial release: solar ephemeris, dashboard TUI, headless summary modes
