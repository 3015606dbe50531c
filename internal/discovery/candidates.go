package discovery

import (
	"iter"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rshade/idelinux/internal/family"
)

// Source tells where a candidate path came from.
type Source int

// Candidate sources.
const (
	SourceFixed Source = iota
	SourceHome
	SourceDesktopEntry
	SourceExplicit
)

// String returns the source name used in logs.
func (s Source) String() string {
	switch s {
	case SourceFixed:
		return "fixed"
	case SourceHome:
		return "home"
	case SourceDesktopEntry:
		return "desktop-entry"
	case SourceExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Candidate is a path that might be an editor executable.
type Candidate struct {
	Path   string
	Source Source
}

// desktopExecEntry captures the executable token of the first Exec= line.
var desktopExecEntry = regexp.MustCompile(`(?m)^[ \t]*Exec[ \t]*=[ \t]*(\S+)`)

// Enumerate yields the candidate executables for a family. The sequence
// is lazy and restartable: each iteration probes the filesystem again.
// Paths are deduplicated by exact string equality, first occurrence wins.
func Enumerate(env Env, d family.Descriptor) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		seen := make(map[string]bool)
		emit := func(c Candidate) bool {
			if c.Path == "" || seen[c.Path] {
				return true
			}
			seen[c.Path] = true
			return yield(c)
		}

		for _, p := range d.FixedPaths {
			if !emit(Candidate{Path: p, Source: SourceFixed}) {
				return
			}
		}

		if env.Home != "" {
			for _, rel := range d.HomePaths {
				if !emit(Candidate{Path: filepath.Join(env.Home, rel), Source: SourceHome}) {
					return
				}
			}
		}

		for _, p := range desktopEntryExecs(env, d.DesktopFiles) {
			if !emit(Candidate{Path: p, Source: SourceDesktopEntry}) {
				return
			}
		}
	}
}

// desktopDataDirs returns the XDG data directories to search, followed by
// the user's ~/.local/share.
func desktopDataDirs(env Env) []string {
	raw := env.getenv("XDG_DATA_DIRS")
	if raw == "" {
		raw = defaultXDGDataDirs
	}

	var dirs []string
	for _, dir := range strings.Split(raw, ":") {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	if env.Home != "" {
		dirs = append(dirs, filepath.Join(env.Home, ".local", "share"))
	}
	return dirs
}

// desktopEntryExecs reads the named desktop files from every data directory
// and returns the executables they launch. Unreadable or malformed entries
// are skipped.
func desktopEntryExecs(env Env, desktopFiles []string) []string {
	if len(desktopFiles) == 0 {
		return nil
	}

	var execs []string
	for _, dir := range desktopDataDirs(env) {
		for _, name := range desktopFiles {
			data, err := os.ReadFile(filepath.Join(dir, "applications", name))
			if err != nil {
				continue
			}
			if p, ok := parseDesktopExec(env, string(data)); ok {
				execs = append(execs, p)
			}
		}
	}
	return execs
}

// parseDesktopExec extracts the executable from desktop entry content.
// Quoted tokens are unquoted and bare command names are resolved via PATH.
func parseDesktopExec(env Env, content string) (string, bool) {
	m := desktopExecEntry.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}

	token := strings.Trim(m[1], `"'`)
	if token == "" {
		return "", false
	}

	if !strings.ContainsRune(token, filepath.Separator) {
		return env.lookPath(token)
	}
	return token, true
}
