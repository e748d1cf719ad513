package generator

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Voice-Wise/release/internal/config"
	"github.com/Voice-Wise/release/internal/github"
)

var (
	errNoMatchingAsset    = errors.New("no matching updater asset")
	errAmbiguousAsset     = errors.New("multiple release assets matched")
	errMissingSignature   = errors.New("missing signature asset")
	errAmbiguousSignature = errors.New("multiple signature assets matched")
)

// signatureSuffix is the extension of detached signature assets.
const signatureSuffix = ".sig"

// updaterMatch is the outcome of resolving a target's updater asset.
// The arch alias that matched is kept for the signature fallback search.
type updaterMatch struct {
	asset     github.Asset
	archAlias string
}

// assetPattern builds the anchored asset-name pattern
// `<anything>_<version>_<platform-alias>_<arch><anything><extension>`.
func assetPattern(version string, platformAliases []string, arch, extension string) *regexp.Regexp {
	escaped := make([]string, 0, len(platformAliases))
	for _, alias := range platformAliases {
		escaped = append(escaped, regexp.QuoteMeta(alias))
	}

	return regexp.MustCompile(fmt.Sprintf(`^.+_%s_(%s)_%s.*%s$`,
		regexp.QuoteMeta(version),
		strings.Join(escaped, "|"),
		regexp.QuoteMeta(arch),
		regexp.QuoteMeta(extension)))
}

// matchAssets returns the assets whose name matches the pattern.
func matchAssets(assets []github.Asset, pattern *regexp.Regexp) []github.Asset {
	var matched []github.Asset

	for _, asset := range assets {
		if pattern.MatchString(asset.Name) {
			matched = append(matched, asset)
		}
	}

	return matched
}

// findUpdaterAsset searches the release assets for the unique updater
// artifact of the target, trying arch aliases and extensions in declared
// priority order. The first combination yielding exactly one match wins.
// More than one match for a single combination is an error regardless of
// later combinations, since it means the release itself is ambiguous.
func findUpdaterAsset(assets []github.Asset, version string, target config.Target) (*updaterMatch, error) {
	for _, arch := range target.ArchAliases {
		for _, extension := range target.Extensions {
			matched := matchAssets(assets, assetPattern(version, target.PlatformAliases, arch, extension))

			switch len(matched) {
			case 0:
				continue
			case 1:
				return &updaterMatch{asset: matched[0], archAlias: arch}, nil
			default:
				return nil, fmt.Errorf("%w for %s (version=%s arch=%s ext=%s): %s",
					errAmbiguousAsset, target.Key(), version, arch, extension, assetNames(matched))
			}
		}
	}

	return nil, fmt.Errorf("%w for %s (version=%s platforms=%s)",
		errNoMatchingAsset, target.Key(), version, strings.Join(target.PlatformAliases, "|"))
}

// findSignatureAsset locates the detached signature of a matched updater
// asset. An asset literally named "<updater-name>.sig" always wins; the
// fallback reruns the platform/arch pattern with the signature extension,
// preferring candidates that name the updater asset and then the
// lexicographically smallest name.
func findSignatureAsset(assets []github.Asset, version string, target config.Target, match *updaterMatch) (*github.Asset, error) {
	exactName := match.asset.Name + signatureSuffix

	var exact []github.Asset

	for _, asset := range assets {
		if asset.Name == exactName {
			exact = append(exact, asset)
		}
	}

	switch {
	case len(exact) == 1:
		return &exact[0], nil
	case len(exact) > 1:
		// Asset names are unique on the hosting side, but the payload is not ours.
		return nil, fmt.Errorf("%w for %s: %s", errAmbiguousSignature, match.asset.Name, assetNames(exact))
	}

	candidates := matchAssets(assets, assetPattern(version, target.PlatformAliases, match.archAlias, signatureSuffix))
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w for %s (version=%s arch=%s)",
			errMissingSignature, match.asset.Name, version, match.archAlias)
	}

	if len(candidates) == 1 {
		return &candidates[0], nil
	}

	pool := make([]github.Asset, 0, len(candidates))

	for _, candidate := range candidates {
		if strings.Contains(candidate.Name, match.asset.Name) {
			pool = append(pool, candidate)
		}
	}

	if len(pool) == 0 {
		pool = candidates
	}

	sort.Slice(pool, func(i, j int) bool {
		return pool[i].Name < pool[j].Name
	})

	if len(pool) > 1 && pool[0].Name == pool[1].Name {
		return nil, fmt.Errorf("%w for %s: %s", errAmbiguousSignature, match.asset.Name, assetNames(pool))
	}

	return &pool[0], nil
}

// assetNames renders a sorted, comma-separated name list for diagnostics.
func assetNames(assets []github.Asset) string {
	names := make([]string, 0, len(assets))
	for _, asset := range assets {
		names = append(names, asset.Name)
	}

	sort.Strings(names)

	return strings.Join(names, ", ")
}
