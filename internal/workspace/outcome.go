package workspace

import "strings"

// Outcome is what happened to one document during Apply.
type Outcome int

// Document outcomes.
const (
	// Created means the file did not exist and was written with defaults.
	Created Outcome = iota + 1
	// Patched means the managed entry was added or updated.
	Patched
	// Unchanged means the managed entry was already present.
	Unchanged
	// Skipped means the document is not one idelinux manages.
	Skipped
	// Unparsed means the file is not valid JSON and was left alone.
	Unparsed
	// Failed means an I/O error prevented the patch.
	Failed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Patched:
		return "patched"
	case Unchanged:
		return "unchanged"
	case Skipped:
		return "skipped"
	case Unparsed:
		return "unparsed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Report holds the outcome for each managed document.
type Report struct {
	Launch     Outcome
	Settings   Outcome
	Extensions Outcome
}

// Changed reports whether any file was written.
func (r Report) Changed() bool {
	for _, o := range []Outcome{r.Launch, r.Settings, r.Extensions} {
		if o == Created || o == Patched {
			return true
		}
	}
	return false
}

// String renders the report as "launch.json=created settings.json=...".
func (r Report) String() string {
	parts := []string{
		LaunchFile + "=" + r.Launch.String(),
		SettingsFile + "=" + r.Settings.String(),
		ExtensionsFile + "=" + r.Extensions.String(),
	}
	return strings.Join(parts, " ")
}

// escapeKey escapes gjson/sjson path metacharacters in a literal key.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
