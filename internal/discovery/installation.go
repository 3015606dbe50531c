package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/idelinux/internal/family"
)

// analyzerExtensionPrefix matches publisher.extension directories of the
// extension that ships the Roslyn analyzers.
const analyzerExtensionPrefix = "visualstudiotoolsforunity.vstuc"

// Installation is a validated editor installation.
type Installation struct {
	Path string `json:"path"`
	Name string `json:"name"`

	// Version is 0.0.0 when the manifest could not be read.
	Version      *semver.Version `json:"version"`
	VersionKnown bool            `json:"version_known"`

	IsPrerelease                   bool            `json:"is_prerelease"`
	SupportsAnalyzers              bool            `json:"supports_analyzers"`
	LatestLanguageVersionSupported *semver.Version `json:"latest_language_version_supported"`

	Family        family.ID `json:"family"`
	ExtensionsDir string    `json:"-"`
}

// zeroVersion is the version of an installation whose manifest is unknown.
func zeroVersion() *semver.Version {
	return semver.New(0, 0, 0, "", "")
}

// displayName appends " [X.Y.Z]" to the family name when the version is known.
func displayName(base string, v *semver.Version, known bool) string {
	if !known || v == nil {
		return base
	}
	return fmt.Sprintf("%s [%d.%d.%d]", base, v.Major(), v.Minor(), v.Patch())
}

// Details renders the one-line description used in logs.
func (i Installation) Details() string {
	lang := "unknown"
	if i.LatestLanguageVersionSupported != nil {
		lang = i.LatestLanguageVersionSupported.String()
	}
	return fmt.Sprintf("%s Path:%s, LanguageVersionSupport:%s AnalyzersSupport:%t",
		i.Name, i.Path, lang, i.SupportsAnalyzers)
}

// Analyzers returns the analyzer assemblies shipped by the newest matching
// extension under the family's extension directory. A missing directory
// yields an empty list.
func (i Installation) Analyzers(env Env) []string {
	if !i.SupportsAnalyzers || env.Home == "" || i.ExtensionsDir == "" {
		return nil
	}

	extDir := extensionPath(filepath.Join(env.Home, i.ExtensionsDir))
	if extDir == "" {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(extDir, "Analyzers", "*.dll"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

// extensionPath returns the lexically greatest extension directory that
// matches analyzerExtensionPrefix, or "".
func extensionPath(extensionsRoot string) string {
	entries, err := os.ReadDir(extensionsRoot)
	if err != nil {
		return ""
	}

	var best string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), analyzerExtensionPrefix) {
			continue
		}
		if entry.Name() > best {
			best = entry.Name()
		}
	}
	if best == "" {
		return ""
	}
	return filepath.Join(extensionsRoot, best)
}
