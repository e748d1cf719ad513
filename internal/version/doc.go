// Package version exposes build metadata for the release tooling binaries.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds. Note that this
// is the tooling's own version, not the application version written into
// generated manifests.
package version
