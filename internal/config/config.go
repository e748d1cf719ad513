package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Target describes one platform/architecture pair the manifest can cover,
// together with the asset-name aliases accepted when resolving release assets.
type Target struct {
	// OS is the manifest operating-system identifier (e.g. "darwin").
	OS string `yaml:"os"`
	// Arch is the canonical architecture identifier used in platform keys.
	Arch string `yaml:"arch"`
	// PlatformAliases are platform spellings accepted in asset names.
	PlatformAliases []string `yaml:"platform_aliases"`
	// ArchAliases are architecture spellings accepted in asset names,
	// tried in declared priority order.
	ArchAliases []string `yaml:"arch_aliases"`
	// Extensions are acceptable asset file extensions, tried in declared priority order.
	Extensions []string `yaml:"extensions"`
}

// Key returns the manifest platform key, "{os}-{arch}".
func (t Target) Key() string {
	return t.OS + "-" + t.Arch
}

const (
	// DefaultTokenEnv is the conventional env var holding the API token.
	DefaultTokenEnv = "GITHUB_TOKEN"

	// DefaultTimeout bounds each outbound HTTP call.
	DefaultTimeout = 30 * time.Second
)

var (
	// errNoTargets is returned when a targets file defines no targets.
	errNoTargets = errors.New("no targets defined")
	// errTargetIncomplete is returned when a target misses a required field.
	errTargetIncomplete = errors.New("target definition incomplete")
	// errDuplicateTarget is returned when two targets share a platform key.
	errDuplicateTarget = errors.New("duplicate target")
)

// DefaultTargets returns the built-in platform table the desktop
// application releases for.
func DefaultTargets() []Target {
	return []Target{
		{
			OS:              "darwin",
			Arch:            "aarch64",
			PlatformAliases: []string{"macos", "darwin"},
			ArchAliases:     []string{"aarch64", "arm64"},
			Extensions:      []string{".app.tar.gz", ".tar.gz"},
		},
		{
			OS:              "darwin",
			Arch:            "x86_64",
			PlatformAliases: []string{"macos", "darwin"},
			ArchAliases:     []string{"x86_64", "x64"},
			Extensions:      []string{".app.tar.gz", ".tar.gz"},
		},
		{
			OS:              "windows",
			Arch:            "x86_64",
			PlatformAliases: []string{"windows"},
			ArchAliases:     []string{"x86_64", "x64"},
			Extensions:      []string{".exe"},
		},
	}
}

// targetsFile is the YAML document shape of a targets override file.
type targetsFile struct {
	Targets []Target `yaml:"targets"`
}

// LoadTargets reads a platform target table from the provided YAML path
// and validates it.
func LoadTargets(path string) ([]Target, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	var doc targetsFile
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal targets file: %w", err)
	}

	if err := ValidateTargets(doc.Targets); err != nil {
		return nil, err
	}

	return doc.Targets, nil
}

// SaveTargets writes a target table to the provided YAML path.
// Used by release tooling to scaffold an override file from the built-in table.
func SaveTargets(path string, targets []Target) error {
	if err := ValidateTargets(targets); err != nil {
		return err
	}

	data, err := yaml.Marshal(targetsFile{Targets: targets})
	if err != nil {
		return fmt.Errorf("marshal targets file: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("write targets file: %w", err)
	}

	return nil
}

// ValidateTargets checks the provided target table for required fields
// and duplicate platform keys.
func ValidateTargets(targets []Target) error {
	if len(targets) == 0 {
		return errNoTargets
	}

	seen := make(map[string]struct{}, len(targets))

	for _, target := range targets {
		if target.OS == "" || target.Arch == "" ||
			len(target.PlatformAliases) == 0 ||
			len(target.ArchAliases) == 0 ||
			len(target.Extensions) == 0 {
			return fmt.Errorf("%w: %s", errTargetIncomplete, target.Key())
		}

		for _, alias := range target.PlatformAliases {
			if strings.TrimSpace(alias) == "" {
				return fmt.Errorf("%w: %s: empty platform alias", errTargetIncomplete, target.Key())
			}
		}

		if _, found := seen[target.Key()]; found {
			return fmt.Errorf("%w: %s", errDuplicateTarget, target.Key())
		}

		seen[target.Key()] = struct{}{}
	}

	return nil
}
