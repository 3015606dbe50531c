package discovery

import (
	"os"
	"path/filepath"

	"github.com/rshade/idelinux/internal/family"
	"github.com/rshade/idelinux/internal/manifest"
)

// Validate turns a candidate path into an Installation of family d. It
// rejects empty paths, paths that are not regular files and paths failing
// the family identity check. An unreadable manifest only leaves the
// version unknown.
func Validate(d family.Descriptor, path string) (Installation, bool) {
	if path == "" {
		return Installation{}, false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Installation{}, false
	}

	if !d.Matches(path) {
		return Installation{}, false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	version := zeroVersion()
	res := manifest.Resolve(abs, d.ManifestPath)
	if res.Found {
		version = res.Version
	}

	return Installation{
		Path:                           abs,
		Name:                           displayName(d.DisplayName, res.Version, res.Found),
		Version:                        version,
		VersionKnown:                   res.Found,
		IsPrerelease:                   d.Prerelease,
		SupportsAnalyzers:              d.SupportsAnalyzers,
		LatestLanguageVersionSupported: d.LatestLanguageVersion,
		Family:                         d.ID,
		ExtensionsDir:                  d.ExtensionsDir,
	}, true
}
