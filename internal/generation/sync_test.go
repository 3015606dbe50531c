package generation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/idelinux/internal/discovery"
	"github.com/rshade/idelinux/internal/family"
	"github.com/rshade/idelinux/internal/workspace"
)

type recordingGenerator struct {
	editor *EditorContext
	seen   []string
	calls  []discovery.Installation
	err    error
	panics bool
}

func (g *recordingGenerator) Generate(_ context.Context, inst discovery.Installation) error {
	g.calls = append(g.calls, inst)
	g.seen = append(g.seen, g.editor.Get())
	if g.panics {
		panic("generator exploded")
	}
	return g.err
}

// installEditor writes an executable with a version manifest.
func installEditor(t *testing.T, root, version string) string {
	t.Helper()
	exe := filepath.Join(root, "bin", "cursor")
	require.NoError(t, os.MkdirAll(filepath.Dir(exe), 0o755))
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))

	manifest := filepath.Join(root, family.DefaultManifestPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(manifest), 0o755))
	require.NoError(t, os.WriteFile(manifest, []byte(`{"version":"`+version+`"}`), 0o644))
	return exe
}

// newDiscoverer returns a discoverer that only probes fixed paths.
func newDiscoverer(t *testing.T, fixed ...string) *discovery.Discoverer {
	t.Helper()
	empty := t.TempDir()
	env := discovery.Env{
		LookupEnv: func(key string) (string, bool) {
			if key == "XDG_DATA_DIRS" {
				return empty, true
			}
			return "", false
		},
		LookPath: func(string) (string, error) { return "", errors.New("not in PATH") },
	}

	d := family.CursorDescriptor()
	d.FixedPaths = fixed
	d.HomePaths = nil
	reg := family.NewRegistry()
	require.NoError(t, reg.Register(d))

	return discovery.New(env, reg)
}

func TestSync_UsesCurrentEditorWhenItResolves(t *testing.T) {
	base := t.TempDir()
	current := installEditor(t, filepath.Join(base, "old"), "0.40.0")
	newer := installEditor(t, filepath.Join(base, "new"), "0.45.0")
	project := t.TempDir()

	editor := NewEditorContext(current)
	gen := &recordingGenerator{editor: editor}
	s := &Synchronizer{Discoverer: newDiscoverer(t, newer), Editor: editor, Generator: gen}

	result := s.Sync(context.Background(), Request{ProjectDir: project})

	require.True(t, result.Found)
	assert.False(t, result.Discovered)
	assert.Equal(t, current, result.Installation.Path)
	assert.Equal(t, []string{current}, gen.seen)
	assert.Equal(t, current, editor.Get())
}

func TestSync_SwapsBestAndRestores(t *testing.T) {
	base := t.TempDir()
	older := installEditor(t, filepath.Join(base, "a"), "0.40.0")
	newer := installEditor(t, filepath.Join(base, "b"), "0.45.0")
	project := t.TempDir()

	editor := NewEditorContext("/nonexistent/editor")
	gen := &recordingGenerator{editor: editor}
	s := &Synchronizer{Discoverer: newDiscoverer(t, older, newer), Editor: editor, Generator: gen}

	result := s.Sync(context.Background(), Request{ProjectDir: project})

	require.True(t, result.Found)
	assert.True(t, result.Discovered)
	assert.Equal(t, newer, result.Installation.Path)
	assert.Equal(t, []string{newer}, gen.seen, "best editor is current during generation")
	assert.Equal(t, "/nonexistent/editor", editor.Get(), "previous editor restored")
}

func TestSync_RestoresAfterGeneratorFailure(t *testing.T) {
	exe := installEditor(t, t.TempDir(), "0.45.0")
	editor := NewEditorContext("")
	gen := &recordingGenerator{editor: editor, err: errors.New("disk full")}
	s := &Synchronizer{Discoverer: newDiscoverer(t, exe), Editor: editor, Generator: gen}

	result := s.Sync(context.Background(), Request{ProjectDir: t.TempDir()})

	require.Error(t, result.GenerateErr)
	assert.True(t, result.Patched, "failure does not stop patching")
	assert.Empty(t, editor.Get())
}

func TestSync_RestoresAfterGeneratorPanic(t *testing.T) {
	exe := installEditor(t, t.TempDir(), "0.45.0")
	editor := NewEditorContext("previous")
	gen := &recordingGenerator{editor: editor, panics: true}
	s := &Synchronizer{Discoverer: newDiscoverer(t, exe), Editor: editor, Generator: gen}

	assert.Panics(t, func() {
		s.Sync(context.Background(), Request{ProjectDir: t.TempDir()})
	})
	assert.Equal(t, "previous", editor.Get())
}

func TestSync_NothingFound(t *testing.T) {
	editor := NewEditorContext("")
	gen := &recordingGenerator{editor: editor}
	s := &Synchronizer{Discoverer: newDiscoverer(t), Editor: editor, Generator: gen}

	project := t.TempDir()
	result := s.Sync(context.Background(), Request{ProjectDir: project, Patch: true})

	assert.False(t, result.Found)
	assert.False(t, result.Patched)
	assert.Empty(t, gen.calls)
	assert.NoDirExists(t, filepath.Join(project, workspace.ConfigDir))
}

func TestSync_PatchDecision(t *testing.T) {
	tests := []struct {
		name        string
		existingDir bool
		force       bool
		wantPatched bool
	}{
		{"no config dir", false, false, true},
		{"config dir present", true, false, false},
		{"config dir present and forced", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := filepath.Join(t.TempDir(), "Game")
			require.NoError(t, os.MkdirAll(project, 0o755))
			if tt.existingDir {
				require.NoError(t, os.Mkdir(filepath.Join(project, workspace.ConfigDir), 0o755))
			}

			exe := installEditor(t, t.TempDir(), "0.45.0")
			s := &Synchronizer{Discoverer: newDiscoverer(t, exe), Editor: NewEditorContext("")}
			result := s.Sync(context.Background(), Request{ProjectDir: project, Patch: tt.force})

			require.True(t, result.Found)
			assert.Equal(t, tt.wantPatched, result.Patched)
			if !tt.wantPatched {
				return
			}
			assert.Equal(t, workspace.Created, result.Report.Settings)
			data, err := os.ReadFile(filepath.Join(project, workspace.ConfigDir, workspace.SettingsFile))
			require.NoError(t, err)
			assert.Equal(t, workspace.DefaultSettings(workspace.DefaultSolutionKey, "Game.sln"), string(data))
		})
	}
}

func TestEditorContext_Swap(t *testing.T) {
	e := NewEditorContext("a")

	restore := e.Swap("b")
	assert.Equal(t, "b", e.Get())

	restore()
	assert.Equal(t, "a", e.Get())

	e.Set("c")
	restore()
	assert.Equal(t, "c", e.Get(), "restore runs once")
}

func TestEditorContext_Concurrent(t *testing.T) {
	e := NewEditorContext("")
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			restore := e.Swap("x")
			_ = e.Get()
			restore()
		}()
	}
	wg.Wait()
}

func TestSolutionFileGenerator(t *testing.T) {
	project := filepath.Join(t.TempDir(), "Game")
	require.NoError(t, os.MkdirAll(project, 0o755))

	assert.Equal(t, filepath.Join(project, "Game.sln"), SolutionPath(project))
	assert.Equal(t, filepath.Join(project, "Game.sln"), SolutionPath(project+"/"))

	gen := SolutionFileGenerator{ProjectDir: project}
	require.NoError(t, gen.Generate(context.Background(), discovery.Installation{}))

	err := SolutionFileGenerator{ProjectDir: filepath.Join(project, "missing")}.
		Generate(context.Background(), discovery.Installation{})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
