// Package generator produces updater manifests from a published release.
//
// One run is a single-pass pipeline: validate inputs, fetch the release by
// tag, resolve each platform target to exactly one updater asset and one
// detached signature, download the signature text, and write the manifest
// JSON in the combined or per-platform format.
package generator
