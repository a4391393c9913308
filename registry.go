package kinetic

import "sort"

// Registry caches which property names are animated by at least one object
// in a scene. It answers UI enumeration queries; the objects' own timelines
// remain the source of truth.
type Registry struct {
	names map[string]struct{}
}

// Register adds prop. Registering twice is a no-op.
func (r *Registry) Register(prop string) {
	if r.names == nil {
		r.names = make(map[string]struct{})
	}
	r.names[prop] = struct{}{}
}

// Unregister removes prop. Unregistering an absent name is a no-op.
func (r *Registry) Unregister(prop string) {
	delete(r.names, prop)
}

// Has reports whether prop is registered.
func (r *Registry) Has(prop string) bool {
	_, ok := r.names[prop]
	return ok
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.names)
}

// All returns the registered names, sorted.
func (r *Registry) All() []string {
	out := make([]string, 0, len(r.names))
	for name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PropertyStillUsed scans objects' timelines and reports whether any of
// them animates prop. This is the authoritative check before unregistering.
func (r *Registry) PropertyStillUsed(prop string, objects []*Object) bool {
	for _, o := range objects {
		if o.IsAnimated(prop) {
			return true
		}
	}
	return false
}

// Rebuild replaces the cache with the properties animated by objects.
func (r *Registry) Rebuild(objects []*Object) {
	r.names = make(map[string]struct{})
	for _, o := range objects {
		for prop := range o.timelines {
			r.names[prop] = struct{}{}
		}
	}
}
