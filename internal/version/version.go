// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Prometheus metrics endpoint, YAML orbit tables, headless JSON snapshots
// 0.2.0 - Periodic comets with fading trails, live control panel
// 0.1.0 - Initial release: orbit camera, eight planets and moons, star field
