// Package config defines the platform target table used when resolving
// release assets and provides helpers to load, validate and save it in
// YAML format.
//
// The built-in table covers the platforms the desktop application releases
// for; an override file can replace it for one-off runs.
package config
