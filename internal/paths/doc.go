// Package paths resolves the per-user directories appcheck reads and
// writes.
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux the config file lives at
// ~/.config/appcheck/config.yaml.
package paths
