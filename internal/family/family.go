// Package family describes the VS Code engine based editors idelinux knows
// how to discover.
//
// A family is plain data: where its executables live, how to recognize
// one, where its installation manifest sits relative to the install root,
// and the capability flags every installation of the family shares. New
// editors are supported by registering another Descriptor.
package family

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ID identifies an editor family.
type ID string

// Known family IDs.
const (
	VSCodeInsiders ID = "vscode-insiders"
	Cursor         ID = "cursor"
)

// DefaultManifestPath is the package manifest location under an install root
// shared by VS Code engine editors.
const DefaultManifestPath = "resources/app/package.json"

// Descriptor is the static description of one editor family.
type Descriptor struct {
	ID          ID
	DisplayName string

	// ExecutableSuffixes are matched case-insensitively against the
	// candidate path to decide whether it belongs to this family.
	ExecutableSuffixes []string

	// FixedPaths are absolute package-manager install locations.
	FixedPaths []string
	// HomePaths are relative to the user's home directory.
	HomePaths []string
	// DesktopFiles are desktop entry file names looked up under
	// <data dir>/applications.
	DesktopFiles []string

	// ManifestPath is relative to the installation root.
	ManifestPath string
	// ExtensionsDir is relative to the user's home directory.
	ExtensionsDir string

	Prerelease            bool
	SupportsAnalyzers     bool
	LatestLanguageVersion *semver.Version
}

// Matches reports whether path passes the family identity check.
func (d Descriptor) Matches(path string) bool {
	lower := strings.ToLower(path)
	for _, suffix := range d.ExecutableSuffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// Validate checks that the descriptor is usable.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("family descriptor: empty id")
	}
	if d.DisplayName == "" {
		return fmt.Errorf("family %s: empty display name", d.ID)
	}
	if len(d.ExecutableSuffixes) == 0 {
		return fmt.Errorf("family %s: no executable suffixes", d.ID)
	}
	if d.ManifestPath == "" || filepath.IsAbs(d.ManifestPath) {
		return fmt.Errorf("family %s: manifest path must be relative, got %q", d.ID, d.ManifestPath)
	}
	for _, p := range d.FixedPaths {
		if !filepath.IsAbs(p) {
			return fmt.Errorf("family %s: fixed path %q is not absolute", d.ID, p)
		}
	}
	return nil
}

// languageVersion13 is the C# language version supported by both families.
func languageVersion13() *semver.Version {
	return semver.New(13, 0, 0, "", "")
}

// CursorDescriptor returns the Cursor editor family.
func CursorDescriptor() Descriptor {
	return Descriptor{
		ID:                 Cursor,
		DisplayName:        "Cursor",
		ExecutableSuffixes: []string{"cursor", "cursor.appimage"},
		FixedPaths: []string{
			"/usr/bin/cursor",
			"/bin/cursor",
			"/usr/local/bin/cursor",
			"/opt/cursor/cursor",
		},
		HomePaths: []string{
			".local/bin/cursor",
			"Applications/cursor",
			"Applications/cursor.AppImage",
			"Applications/Cursor.AppImage",
		},
		DesktopFiles:          []string{"cursor.desktop"},
		ManifestPath:          DefaultManifestPath,
		ExtensionsDir:         ".cursor/extensions",
		Prerelease:            false,
		SupportsAnalyzers:     true,
		LatestLanguageVersion: languageVersion13(),
	}
}

// VSCodeInsidersDescriptor returns the VS Code Insiders editor family.
func VSCodeInsidersDescriptor() Descriptor {
	return Descriptor{
		ID:                 VSCodeInsiders,
		DisplayName:        "Visual Studio Code Insiders",
		ExecutableSuffixes: []string{"code-insiders"},
		FixedPaths: []string{
			"/usr/bin/code-insiders",
			"/bin/code-insiders",
			"/usr/local/bin/code-insiders",
			"/snap/bin/code-insiders",
			"/usr/share/code-insiders/bin/code-insiders",
		},
		HomePaths: []string{
			".local/bin/code-insiders",
			"Applications/code-insiders",
		},
		DesktopFiles:          []string{"code-insiders.desktop"},
		ManifestPath:          DefaultManifestPath,
		ExtensionsDir:         ".vscode-insiders/extensions",
		Prerelease:            true,
		SupportsAnalyzers:     true,
		LatestLanguageVersion: languageVersion13(),
	}
}
