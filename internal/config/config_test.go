package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDefaultTargets ensures the built-in table is valid and keyed as expected.
func TestDefaultTargets(t *testing.T) {
	t.Parallel()

	targets := DefaultTargets()
	require.NoError(t, ValidateTargets(targets))

	keys := make([]string, 0, len(targets))
	for _, target := range targets {
		keys = append(keys, target.Key())
	}

	require.Equal(t, []string{"darwin-aarch64", "darwin-x86_64", "windows-x86_64"}, keys)
}

// TestValidateTargets checks required fields and duplicate key detection.
func TestValidateTargets(t *testing.T) {
	t.Parallel()

	// Empty table.
	require.Error(t, ValidateTargets(nil))

	// Missing aliases.
	targets := []Target{{OS: "linux", Arch: "x86_64"}}
	require.Error(t, ValidateTargets(targets))

	// Duplicate key.
	valid := Target{
		OS:              "linux",
		Arch:            "x86_64",
		PlatformAliases: []string{"linux"},
		ArchAliases:     []string{"x86_64", "amd64"},
		Extensions:      []string{".AppImage.tar.gz"},
	}

	require.NoError(t, ValidateTargets([]Target{valid}))
	require.Error(t, ValidateTargets([]Target{valid, valid}))
}

// TestSaveLoadRoundtrip ensures a targets file is persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "targets.yaml")

	require.NoError(t, SaveTargets(path, DefaultTargets()))

	loaded, err := LoadTargets(path)
	require.NoError(t, err)
	require.Equal(t, DefaultTargets(), loaded)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoadTargets_Invalid covers unreadable and malformed files.
func TestLoadTargets_Invalid(t *testing.T) {
	t.Parallel()

	_, err := LoadTargets(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets: {not: a list}"), 0o600))

	_, err = LoadTargets(path)
	require.Error(t, err)
}
