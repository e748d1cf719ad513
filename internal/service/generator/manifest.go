package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Voice-Wise/release/internal/domain/channel"
)

// PlatformEntry points the update client at one platform's artifact.
type PlatformEntry struct {
	// Signature is the detached signature text, whitespace-trimmed.
	Signature string `json:"signature"`
	// URL is the public download location of the updater asset.
	URL string `json:"url"`
}

// Manifest is the updater document consumed by the desktop application.
type Manifest struct {
	// Version is the release version without the leading "v".
	Version string `json:"version"`
	// PubDate is the release publish timestamp, passed through verbatim.
	PubDate string `json:"pub_date"`
	// Platforms maps "{os}-{arch}" keys to their update pointers.
	Platforms map[string]PlatformEntry `json:"platforms"`
	// Notes is the free-text release notes shown by the update prompt.
	Notes string `json:"notes"`
}

// CombinedFilename is the output name of the combined manifest format.
const CombinedFilename = "latest.json"

const (
	// outDirPermissions is the mode for created output directories.
	outDirPermissions os.FileMode = 0o755
	// manifestPermissions is the mode for written manifest files.
	manifestPermissions os.FileMode = 0o644
)

// defaultNotes renders the release notes used when no override is given.
// The text is deterministic for a given version, channel and release URL.
func defaultNotes(version string, ch channel.Channel, releaseURL string) string {
	return strings.TrimSpace(
		fmt.Sprintf("VoiceWise v%s（%s）\n\n更新说明请查看：%s", version, ch.Label(), releaseURL))
}

// encodeManifest serializes a manifest with two-space indentation, verbatim
// non-ASCII text and a trailing newline.
func encodeManifest(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(m); err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}

	return buf.Bytes(), nil
}

// writeManifest persists a manifest under outDir, creating the directory
// when absent. It returns the written path.
func writeManifest(outDir, filename string, m *Manifest) (string, error) {
	if err := os.MkdirAll(outDir, outDirPermissions); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	data, err := encodeManifest(m)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, data, manifestPermissions); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return path, nil
}

// platformFilename names a per-platform manifest by channel and platform key.
func platformFilename(ch channel.Channel, platformKey string) string {
	return fmt.Sprintf("%s-%s.json", ch, platformKey)
}
