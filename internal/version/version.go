// Package version exposes build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	BuiltAt = "unknown"
)

// Human returns a short "version (commit)" string for startup logs.
func Human() string {
	return Version + " (" + Commit + ")"
}
