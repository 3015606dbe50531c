package family

import (
	"fmt"
	"sync"
)

// Registry holds family descriptors in registration order.
type Registry struct {
	mu    sync.RWMutex
	order []ID
	byID  map[ID]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[ID]Descriptor)}
}

// Default returns a registry with every built-in family: VS Code Insiders
// first, then Cursor.
func Default() *Registry {
	r := NewRegistry()
	for _, d := range []Descriptor{VSCodeInsidersDescriptor(), CursorDescriptor()} {
		if err := r.Register(d); err != nil {
			panic(err) // built-in descriptors are static
		}
	}
	return r
}

// Register adds a family. Registering an ID twice is an error.
func (r *Registry) Register(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; exists {
		return fmt.Errorf("family %s already registered", d.ID)
	}
	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id ID) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byID[id]
	return d, ok
}

// All returns every descriptor in registration order.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Subset returns a new registry holding only the listed families, in the
// order of the receiver. Unknown IDs are reported as an error.
func (r *Registry) Subset(ids []ID) (*Registry, error) {
	if len(ids) == 0 {
		return r, nil
	}

	want := make(map[ID]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.Lookup(id); !ok {
			return nil, fmt.Errorf("unknown editor family %q", id)
		}
		want[id] = true
	}

	sub := NewRegistry()
	for _, d := range r.All() {
		if want[d.ID] {
			_ = sub.Register(d)
		}
	}
	return sub, nil
}
