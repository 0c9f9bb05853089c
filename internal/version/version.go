// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.1.0"

// Milestones:
// 0.1.0 - Meeus Sun and Moon, ICRS/galactic frames, event search, dark-window
//         planner, observer profiles with hot reload, sky dashboard
