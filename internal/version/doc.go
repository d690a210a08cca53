// Package version exposes build metadata for the pipfile-setup binary itself.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds. This is the
// tool's own version, unrelated to the Python package versions it derives.
package version
