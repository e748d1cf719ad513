package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Voice-Wise/release/internal/config"
	"github.com/Voice-Wise/release/internal/domain/channel"
	"github.com/Voice-Wise/release/internal/github"
	"github.com/Voice-Wise/release/internal/logger"
)

// Manifest output formats.
const (
	// FormatCombined writes a single latest.json covering all resolved platforms.
	FormatCombined = "combined"
	// FormatPerPlatform writes one channel-qualified file per resolved platform.
	FormatPerPlatform = "per-platform"
)

var (
	errUnknownFormat    = errors.New("unknown manifest format")
	errNoTargetsMatched = errors.New("no targets matched platforms filter")
	errNoPlatformAssets = errors.New("no platform assets found, cannot generate manifest")
)

// Options are inputs accepted by the generator entry point.
type Options struct {
	// Owner is the repository owner on the hosting provider.
	Owner string
	// Repo is the repository name.
	Repo string
	// Tag is the release tag to generate manifests for.
	Tag string
	// OutDir is the directory manifests are written to, created if absent.
	OutDir string
	// Channel selects the release track (stable or nightly).
	Channel string
	// Format selects combined or per-platform output.
	Format string
	// Version optionally overrides the version derived from the tag.
	Version string
	// Notes optionally overrides the templated release notes.
	Notes string
	// Platforms is an optional comma-separated platform-key filter.
	Platforms string
	// TokenEnv names the env var holding the API token.
	TokenEnv string
	// TargetsFile optionally replaces the built-in platform target table.
	TargetsFile string
	// Strict makes any unresolved target fatal instead of skipped.
	Strict bool
	// Timeout bounds each outbound HTTP call.
	Timeout time.Duration
}

// Run executes the generation pipeline and is the public entry point for the
// CLI. All input validation happens before the first network call.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "updater-manifest")

	ch, err := channel.Parse(opts.Channel)
	if err != nil {
		return err
	}

	if err = ch.ValidateTag(opts.Tag); err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = FormatCombined
	}

	if format != FormatCombined && format != FormatPerPlatform {
		return fmt.Errorf("%w: %q", errUnknownFormat, opts.Format)
	}

	targets, err := resolveTargets(opts)
	if err != nil {
		return err
	}

	tokenEnv := opts.TokenEnv
	if tokenEnv == "" {
		tokenEnv = config.DefaultTokenEnv
	}

	token := os.Getenv(tokenEnv)
	if token == "" {
		logger.InfoKV(ctx, "No token found, using unauthenticated requests", "token_env", tokenEnv)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	client := github.NewClient(token, github.WithTimeout(timeout))

	return generate(ctx, client, ch, format, targets, opts)
}

// generate runs the pipeline against an already-constructed client.
// Separated from Run so tests can point the client at a local server.
func generate(
	ctx context.Context,
	client *github.Client,
	ch channel.Channel,
	format string,
	targets []config.Target,
	opts *Options,
) error {
	logger.InfoKV(ctx, "Fetching release", "owner", opts.Owner, "repo", opts.Repo, "tag", opts.Tag)

	release, err := client.ReleaseByTag(ctx, opts.Owner, opts.Repo, opts.Tag)
	if err != nil {
		return fmt.Errorf("fetch release %s: %w", opts.Tag, err)
	}

	version := resolveVersion(opts)

	notes := strings.TrimSpace(opts.Notes)
	if notes == "" {
		notes = defaultNotes(version, ch, release.HTMLURL)
	}

	platforms, err := resolvePlatforms(ctx, client, release.AssetList(), version, targets, opts.Strict)
	if err != nil {
		return err
	}

	manifest := &Manifest{
		Version:   version,
		PubDate:   release.PubDate(),
		Platforms: platforms,
		Notes:     notes,
	}

	written, err := writeManifests(ch, format, opts.OutDir, manifest)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Wrote manifests",
		"files", strings.Join(written, ", "),
		"platforms", strings.Join(platformKeys(platforms), ", "))

	return nil
}

// resolveTargets loads the target table and applies the platforms filter.
func resolveTargets(opts *Options) ([]config.Target, error) {
	targets := config.DefaultTargets()

	if opts.TargetsFile != "" {
		loaded, err := config.LoadTargets(opts.TargetsFile)
		if err != nil {
			return nil, err
		}

		targets = loaded
	}

	if strings.TrimSpace(opts.Platforms) == "" {
		return targets, nil
	}

	filter := make(map[string]struct{})

	for _, key := range strings.Split(opts.Platforms, ",") {
		if key = strings.TrimSpace(key); key != "" {
			filter[key] = struct{}{}
		}
	}

	filtered := make([]config.Target, 0, len(targets))

	for _, target := range targets {
		if _, found := filter[target.Key()]; found {
			filtered = append(filtered, target)
		}
	}

	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: %s", errNoTargetsMatched, opts.Platforms)
	}

	return filtered, nil
}

// resolveVersion derives the manifest version from the override or the tag.
func resolveVersion(opts *Options) string {
	if v := strings.TrimSpace(opts.Version); v != "" {
		return strings.TrimPrefix(v, "v")
	}

	return channel.VersionFromTag(opts.Tag)
}

// resolvePlatforms resolves every target to its updater asset and signature,
// downloading signature bytes as it goes. In best-effort mode targets
// without a matching updater asset are logged and skipped; ambiguous matches
// are fatal in both modes.
func resolvePlatforms(
	ctx context.Context,
	client *github.Client,
	assets []github.Asset,
	version string,
	targets []config.Target,
	strict bool,
) (map[string]PlatformEntry, error) {
	platforms := make(map[string]PlatformEntry, len(targets))

	for _, target := range targets {
		entry, err := resolveTarget(ctx, client, assets, version, target)
		if err != nil {
			if !strict && errors.Is(err, errNoMatchingAsset) {
				logger.WarnKV(ctx, "Skipping platform without updater asset",
					"platform", target.Key(), "reason", err.Error())

				continue
			}

			return nil, err
		}

		logger.InfoKV(ctx, "Resolved platform", "platform", target.Key())

		platforms[target.Key()] = *entry
	}

	if len(platforms) == 0 {
		return nil, errNoPlatformAssets
	}

	return platforms, nil
}

// resolveTarget matches one target's updater asset and signature and
// fetches the signature text.
func resolveTarget(
	ctx context.Context,
	client *github.Client,
	assets []github.Asset,
	version string,
	target config.Target,
) (*PlatformEntry, error) {
	match, err := findUpdaterAsset(assets, version, target)
	if err != nil {
		return nil, err
	}

	signatureAsset, err := findSignatureAsset(assets, version, target, match)
	if err != nil {
		return nil, err
	}

	signatureBytes, err := client.DownloadAsset(ctx, signatureAsset)
	if err != nil {
		return nil, err
	}

	return &PlatformEntry{
		Signature: strings.TrimSpace(string(signatureBytes)),
		URL:       match.asset.BrowserDownloadURL,
	}, nil
}

// writeManifests persists the manifest in the selected format and returns
// the written paths.
func writeManifests(ch channel.Channel, format, outDir string, manifest *Manifest) ([]string, error) {
	if format == FormatCombined {
		path, err := writeManifest(outDir, CombinedFilename, manifest)
		if err != nil {
			return nil, err
		}

		return []string{path}, nil
	}

	written := make([]string, 0, len(manifest.Platforms))

	for _, key := range platformKeys(manifest.Platforms) {
		single := &Manifest{
			Version:   manifest.Version,
			PubDate:   manifest.PubDate,
			Platforms: map[string]PlatformEntry{key: manifest.Platforms[key]},
			Notes:     manifest.Notes,
		}

		path, err := writeManifest(outDir, platformFilename(ch, key), single)
		if err != nil {
			return nil, err
		}

		written = append(written, path)
	}

	return written, nil
}

// platformKeys returns the sorted platform keys of a manifest.
func platformKeys(platforms map[string]PlatformEntry) []string {
	keys := make([]string, 0, len(platforms))
	for key := range platforms {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
