package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/idelinux/internal/family"
)

// testEnv builds an Env whose environment is the given map.
func testEnv(home string, vars map[string]string) Env {
	return Env{
		Home: home,
		LookupEnv: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
		LookPath: func(string) (string, error) {
			return "", errors.New("not in PATH")
		},
	}
}

// testFamily is a Cursor-like family rooted in a temp dir.
func testFamily(fixed ...string) family.Descriptor {
	d := family.CursorDescriptor()
	d.FixedPaths = fixed
	return d
}

// writeExe creates an executable file and, when version is non-empty, a
// manifest at <root>/resources/app/package.json where root is the install
// root derived from the executable location.
func writeExe(t *testing.T, exePath, version string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(exePath), 0o755))
	require.NoError(t, os.WriteFile(exePath, []byte("#!/bin/sh\n"), 0o755))

	if version != "" {
		root := filepath.Dir(exePath)
		if filepath.Base(root) == "bin" {
			root = filepath.Dir(root)
		}
		mp := filepath.Join(root, family.DefaultManifestPath)
		require.NoError(t, os.MkdirAll(filepath.Dir(mp), 0o755))
		require.NoError(t, os.WriteFile(mp, []byte(`{"version":"`+version+`"}`), 0o644))
	}
	return exePath
}
