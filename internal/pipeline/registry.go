package pipeline

import "fmt"

// Registry holds parsed components in file order. It is filled once by the
// parser and only read afterwards, so it needs no locking.
type Registry struct {
	components []Component
	limit      int
}

// NewRegistry returns an empty registry. A limit of zero or less means the
// registry grows without bound.
func NewRegistry(limit int) *Registry {
	return &Registry{limit: limit}
}

// Add appends c. Duplicate names are kept; Resolve returns the first one.
func (r *Registry) Add(c Component) error {
	if r.limit > 0 && len(r.components) >= r.limit {
		return fmt.Errorf("add %s %q: %w (limit %d)", c.Kind(), c.Name(), ErrRegistryFull, r.limit)
	}
	r.components = append(r.components, c)
	return nil
}

// Resolve returns the first component named name, whatever its kind.
func (r *Registry) Resolve(name string) (Component, bool) {
	for _, c := range r.components {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Lookup is Resolve with a *ResolveError for a missing name.
func (r *Registry) Lookup(name string) (Component, error) {
	c, ok := r.Resolve(name)
	if !ok {
		return nil, &ResolveError{Ref: name}
	}
	return c, nil
}

// All returns the components in insertion order.
func (r *Registry) All() []Component {
	out := make([]Component, len(r.components))
	copy(out, r.components)
	return out
}

// Len returns the number of components.
func (r *Registry) Len() int {
	return len(r.components)
}
