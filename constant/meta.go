// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Moos is the canonical application identifier used for filesystem paths and CLI branding.
	Moos = "moos"

	// Version is the current application semantic version string.
	Version = "0.3.1"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Repository is the GitHub owner/name pair releases are published under.
const Repository = "moos-cli/moos"
