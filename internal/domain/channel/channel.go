package channel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Channel identifies a release track.
type Channel string

const (
	// Stable is the default channel: tags are strict vMAJOR.MINOR.PATCH.
	Stable Channel = "stable"
	// Nightly allows prerelease/build-metadata suffixes and the rolling tag.
	Nightly Channel = "nightly"
)

// NightlyTag is the rolling tag nightly builds are published under.
const NightlyTag = "nightly"

var (
	// ErrUnknownChannel is returned for channel names other than stable/nightly.
	ErrUnknownChannel = errors.New("unknown release channel")
	// ErrMalformedTag is returned when a tag does not conform to the channel's grammar.
	ErrMalformedTag = errors.New("malformed release tag")
)

var (
	// stableTagPattern matches exactly vMAJOR.MINOR.PATCH.
	stableTagPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)
	// nightlyTagPattern additionally allows -prerelease and/or +buildmetadata suffixes.
	nightlyTagPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+(?:[-+][0-9A-Za-z.-]+)?$`)
)

// Parse converts a channel name from the CLI to a Channel.
func Parse(s string) (Channel, error) {
	switch Channel(strings.ToLower(strings.TrimSpace(s))) {
	case Stable:
		return Stable, nil
	case Nightly:
		return Nightly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
	}
}

// Label returns the human-readable channel name used in release notes.
func (c Channel) Label() string {
	if c == Nightly {
		return "Nightly"
	}

	return "Stable"
}

// ValidateTag checks a release tag against the channel's grammar.
// Validation happens before any network call is made.
func (c Channel) ValidateTag(tag string) error {
	if c == Nightly {
		if tag == NightlyTag {
			return nil
		}

		if !nightlyTagPattern.MatchString(tag) {
			return fmt.Errorf("%w: expected vX.Y.Z(-pre)?(+meta)? or %q, got %q", ErrMalformedTag, NightlyTag, tag)
		}

		return checkSemver(tag)
	}

	if !stableTagPattern.MatchString(tag) {
		return fmt.Errorf("%w: expected stable tag vX.Y.Z, got %q", ErrMalformedTag, tag)
	}

	return checkSemver(tag)
}

// VersionFromTag derives the manifest version string from a tag
// by stripping the leading "v".
func VersionFromTag(tag string) string {
	return strings.TrimPrefix(tag, "v")
}

// checkSemver verifies the numeric core of the tag parses as strict semver.
// The shape regexps above gate the grammar; this catches leftovers like
// leading zeros in odd positions that a regexp would wave through.
func checkSemver(tag string) error {
	if _, err := semver.StrictNewVersion(VersionFromTag(tag)); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrMalformedTag, tag, err)
	}

	return nil
}
