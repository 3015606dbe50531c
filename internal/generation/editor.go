// Package generation runs the project synchronization flow: pick the
// editor to generate for, generate the project files, and create or patch
// the workspace configuration.
package generation

import "sync"

// EditorContext holds the editor executable the host currently targets.
// It is safe for concurrent use.
type EditorContext struct {
	mu   sync.Mutex
	path string
}

// NewEditorContext returns a context targeting path.
func NewEditorContext(path string) *EditorContext {
	return &EditorContext{path: path}
}

// Get returns the current editor path.
func (e *EditorContext) Get() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.path
}

// Set replaces the current editor path.
func (e *EditorContext) Set(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.path = path
}

// Swap sets path as current and returns a function restoring the previous
// value. The restore function is safe to call more than once.
func (e *EditorContext) Swap(path string) (restore func()) {
	e.mu.Lock()
	previous := e.path
	e.path = path
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { e.Set(previous) })
	}
}
