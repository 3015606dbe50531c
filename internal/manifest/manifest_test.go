package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const relManifest = "resources/app/package.json"

// writeInstall lays out <root>/<exe> and, when manifest is non-empty,
// <root>/resources/app/package.json.
func writeInstall(t *testing.T, root, exe, manifest string) string {
	t.Helper()
	exePath := filepath.Join(root, exe)
	require.NoError(t, os.MkdirAll(filepath.Dir(exePath), 0o755))
	require.NoError(t, os.WriteFile(exePath, []byte("#!/bin/sh\n"), 0o755))
	if manifest != "" {
		mp := filepath.Join(root, relManifest)
		require.NoError(t, os.MkdirAll(filepath.Dir(mp), 0o755))
		require.NoError(t, os.WriteFile(mp, []byte(manifest), 0o644))
	}
	return exePath
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "1.2.3-insider", want: "1.2.3"},
		{raw: "0.42.3", want: "0.42.3"},
		{raw: "1.96.0-insider-20240101", want: "1.96.0"},
		{raw: "2.1", want: "2.1.0"},
		{raw: " 3.0.1 ", want: "3.0.1"},
		{raw: "", wantErr: true},
		{raw: "-insider", wantErr: true},
		{raw: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseVersion(tt.raw)
			if tt.wantErr {
				assert.False(t, got.Found)
				assert.Nil(t, got.Version)
				assert.NotEmpty(t, got.Reason)
				return
			}
			require.True(t, got.Found, got.Reason)
			assert.Equal(t, tt.want, got.Version.String())
		})
	}
}

func TestRoot(t *testing.T) {
	t.Run("executable in bin directory", func(t *testing.T) {
		root, ok := Root("/opt/cursor/bin/cursor")
		require.True(t, ok)
		assert.Equal(t, "/opt/cursor", root)
	})

	t.Run("executable at install root", func(t *testing.T) {
		root, ok := Root("/opt/cursor/cursor")
		require.True(t, ok)
		assert.Equal(t, "/opt/cursor", root)
	})

	t.Run("absolute symlink into bin", func(t *testing.T) {
		dir := t.TempDir()
		target := writeInstall(t, filepath.Join(dir, "share", "code-insiders"), "bin/code-insiders", "")
		link := filepath.Join(dir, "usr-bin", "code-insiders")
		require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
		require.NoError(t, os.Symlink(target, link))

		root, ok := Root(link)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "share", "code-insiders"), root)
	})

	t.Run("relative symlink", func(t *testing.T) {
		dir := t.TempDir()
		writeInstall(t, filepath.Join(dir, "cursor-app"), "cursor", "")
		link := filepath.Join(dir, "links", "cursor")
		require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
		require.NoError(t, os.Symlink("../cursor-app/cursor", link))

		root, ok := Root(link)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "cursor-app"), root)
	})

	t.Run("empty path", func(t *testing.T) {
		_, ok := Root("")
		assert.False(t, ok)
	})

	t.Run("bare name has no root", func(t *testing.T) {
		_, ok := Root("cursor")
		assert.False(t, ok)
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{name: "insider suffix", manifest: `{"name":"Code - Insiders","version":"1.2.3-insider"}`, want: "1.2.3"},
		{name: "plain version", manifest: `{"name":"Cursor","version":"0.45.11"}`, want: "0.45.11"},
		{name: "corrupt json", manifest: `{"version": "1.0.0"`},
		{name: "missing version", manifest: `{"name":"Cursor"}`},
		{name: "numeric version", manifest: `{"version": 1}`},
		{name: "unparsable version", manifest: `{"version": "next"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe := writeInstall(t, t.TempDir(), "bin/cursor", tt.manifest)

			got := Resolve(exe, relManifest)
			if tt.want == "" {
				assert.False(t, got.Found)
				assert.Nil(t, got.Version)
				return
			}
			require.True(t, got.Found, got.Reason)
			assert.Equal(t, tt.want, got.Version.String())
		})
	}
}

func TestResolve_MissingManifest(t *testing.T) {
	exe := writeInstall(t, t.TempDir(), "cursor", "")

	got := Resolve(exe, relManifest)
	assert.False(t, got.Found)
	assert.Contains(t, got.Reason, "reading manifest")
}
