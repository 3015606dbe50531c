package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/idelinux/internal/discovery"
)

// Column widths of the installation table.
const (
	colWidthName    = 32
	colWidthFamily  = 16
	colWidthChannel = 10
)

// versionLabel is the version shown for an installation.
func versionLabel(inst discovery.Installation) string {
	if !inst.VersionKnown || inst.Version == nil {
		return "unknown"
	}
	return inst.Version.String()
}

func channelLabel(inst discovery.Installation) string {
	if inst.IsPrerelease {
		return "insiders"
	}
	return "stable"
}

// formatRow lays out one installation without styling.
func formatRow(inst discovery.Installation) string {
	return fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		colWidthName, truncate(inst.Name, colWidthName),
		colWidthFamily, string(inst.Family),
		colWidthChannel, channelLabel(inst),
		inst.Path,
	)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

func tableHeader() string {
	return fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		colWidthName, "NAME",
		colWidthFamily, "FAMILY",
		colWidthChannel, "CHANNEL",
		"PATH",
	)
}

// RenderInstallations renders ranked installations as a table, best last.
// The best row is highlighted and prerelease rows are tinted.
func RenderInstallations(ranked []discovery.Installation) string {
	if len(ranked) == 0 {
		return mutedStyle.Render("No editor installations found.")
	}

	rows := make([]string, 0, len(ranked)+1)
	rows = append(rows, headerStyle.Render(tableHeader()))
	for i, inst := range ranked {
		row := formatRow(inst)
		switch {
		case i == len(ranked)-1:
			row = bestStyle.Render(row + "  (selected)")
		case inst.IsPrerelease:
			row = preStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderDetail renders every field of one installation.
func RenderDetail(inst discovery.Installation) string {
	lang := "unknown"
	if inst.LatestLanguageVersionSupported != nil {
		lang = inst.LatestLanguageVersionSupported.String()
	}

	fields := [][2]string{
		{"Name", inst.Name},
		{"Path", inst.Path},
		{"Family", string(inst.Family)},
		{"Version", versionLabel(inst)},
		{"Channel", channelLabel(inst)},
		{"C# language", lang},
		{"Analyzers", fmt.Sprintf("%t", inst.SupportsAnalyzers)},
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", f[0])))
		b.WriteString(" ")
		b.WriteString(f[1])
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
