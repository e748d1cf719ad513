// Package github is a minimal client for the GitHub releases REST API.
//
// It covers exactly the two calls the manifest generator needs: fetching a
// release by tag and downloading a release asset's raw bytes. Requests carry
// a bearer token when one is configured and plain unauthenticated headers
// otherwise.
package github
