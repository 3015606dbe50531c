// Package manifest reads the version of an installed editor from the
// package manifest shipped inside its installation root.
//
// Resolution is best effort. Every failure mode (dangling link, missing
// manifest, invalid JSON, missing or malformed version) produces a Result
// with Found set to false; nothing in this package returns an error.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"
)

// binDir is the conventional executable subdirectory of an install root.
const binDir = "bin"

// Result is the outcome of a version lookup.
type Result struct {
	Version *semver.Version
	Found   bool
	// Reason explains why no version was found.
	Reason string
}

func notFound(reason string) Result {
	return Result{Reason: reason}
}

// Root returns the installation root for an executable path. One level of
// symlink is followed; the executable's directory is the root unless it is
// a "bin" directory, in which case its parent is.
func Root(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	resolved := path
	if target, err := os.Readlink(path); err == nil {
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		resolved = target
	}

	parent := filepath.Dir(filepath.Clean(resolved))
	if parent == "" || parent == "." {
		return "", false
	}

	if filepath.Base(parent) == binDir {
		grand := filepath.Dir(parent)
		if grand == parent {
			return "", false
		}
		return grand, true
	}

	return parent, true
}

// ReadVersion reads the manifest at root/relPath and parses its version.
func ReadVersion(root, relPath string) Result {
	manifestPath := filepath.Join(root, relPath)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return notFound("reading manifest: " + err.Error())
	}

	if !gjson.ValidBytes(data) {
		return notFound("manifest is not valid JSON")
	}

	field := gjson.GetBytes(data, "version")
	if field.Type != gjson.String {
		return notFound("manifest has no string version field")
	}

	return ParseVersion(field.Str)
}

// ParseVersion parses the leading numeric part of a raw version string,
// ignoring anything after the first "-" (e.g. "1.2.3-insider" is 1.2.3).
func ParseVersion(raw string) Result {
	numeric, _, _ := strings.Cut(strings.TrimSpace(raw), "-")
	if numeric == "" {
		return notFound("empty version")
	}

	v, err := semver.NewVersion(numeric)
	if err != nil {
		return notFound("parsing version " + raw + ": " + err.Error())
	}

	return Result{Version: v, Found: true}
}

// Resolve locates the installation root for path and reads the manifest
// at relPath beneath it.
func Resolve(path, relPath string) Result {
	root, ok := Root(path)
	if !ok {
		return notFound("no installation root for " + path)
	}
	return ReadVersion(root, relPath)
}
