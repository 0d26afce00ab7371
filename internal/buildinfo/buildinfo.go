// Package buildinfo holds version identifiers stamped into release builds.
package buildinfo

// Injected via -ldflags for release binaries; empty for local builds, where
// module build info fills the gaps.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
