package workspace

import (
	"encoding/json"
	"strings"
)

// Defaults used by NewPatcher.
const (
	DefaultExtensionID  = "visualstudiotoolsforunity.vstuc"
	DefaultDebuggerType = "vstuc"
	DefaultSolutionKey  = "dotnet.defaultSolution"
)

// attachConfigurationName is the display name of the debugger entry.
const attachConfigurationName = "Attach to Unity"

// excludedPatterns are hidden from the explorer in a new settings.json.
//
//nolint:gochecknoglobals // Static table.
var excludedPatterns = []string{
	"**/.DS_Store", "**/.git", "**/.vs", "**/.gitmodules", "**/.vsconfig",
	"**/*.booproj", "**/*.pidb", "**/*.suo", "**/*.user", "**/*.userprefs", "**/*.unityproj",
	"**/*.dll", "**/*.exe", "**/*.pdf", "**/*.mid", "**/*.midi", "**/*.wav",
	"**/*.gif", "**/*.ico", "**/*.jpg", "**/*.jpeg", "**/*.png", "**/*.psd",
	"**/*.tga", "**/*.tif", "**/*.tiff", "**/*.3ds", "**/*.3DS", "**/*.fbx", "**/*.FBX",
	"**/*.lxo", "**/*.LXO", "**/*.ma", "**/*.MA", "**/*.obj", "**/*.OBJ",
	"**/*.asset", "**/*.cubemap", "**/*.flare", "**/*.mat", "**/*.meta", "**/*.prefab", "**/*.unity",
	"build/", "Build/", "Library/", "library/", "obj/", "Obj/", "Logs/", "logs/",
	"ProjectSettings/", "UserSettings/", "temp/", "Temp/",
}

// yamlAssociations maps Unity serialized asset extensions to YAML.
//
//nolint:gochecknoglobals // Static table.
var yamlAssociations = []string{"*.asset", "*.meta", "*.prefab", "*.unity"}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// attachConfiguration is the debugger entry appended to launch.json.
func attachConfiguration(debuggerType string) string {
	return `{"name": ` + quote(attachConfigurationName) +
		`, "type": ` + quote(debuggerType) +
		`, "request": "attach"}`
}

// DefaultLaunch returns the content of a new launch.json.
func DefaultLaunch(debuggerType string) string {
	return `{
    "version": "0.2.0",
    "configurations": [
        {
            "name": ` + quote(attachConfigurationName) + `,
            "type": ` + quote(debuggerType) + `,
            "request": "attach"
        }
    ]
}
`
}

// DefaultExtensions returns the content of a new extensions.json.
func DefaultExtensions(extensionID string) string {
	return `{
    "recommendations": [
        ` + quote(extensionID) + `
    ]
}
`
}

// DefaultSettings returns the content of a new settings.json pointing the
// C# tooling at solution (a file name, not a path).
func DefaultSettings(solutionKey, solution string) string {
	var b strings.Builder

	b.WriteString("{\n    \"files.exclude\": {\n")
	for i, pattern := range excludedPatterns {
		b.WriteString("        " + quote(pattern) + ": true")
		if i < len(excludedPatterns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("    },\n    \"files.associations\": {\n")
	for i, ext := range yamlAssociations {
		b.WriteString("        " + quote(ext) + ": \"yaml\"")
		if i < len(yamlAssociations)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("    },\n")
	b.WriteString("    \"explorer.fileNesting.enabled\": true,\n")
	b.WriteString("    \"explorer.fileNesting.patterns\": {\n        \"*.sln\": \"*.csproj\"\n    },\n")
	b.WriteString("    " + quote(solutionKey) + ": " + quote(solution) + "\n}\n")

	return b.String()
}
