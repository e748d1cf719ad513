// Package channel contains core domain types for release tracks.
//
// It defines the stable and nightly channels, their tag grammars, and the
// derivation of a manifest version string from a release tag.
package channel
