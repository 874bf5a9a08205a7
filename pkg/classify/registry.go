package classify

import (
	"slices"
	"strings"
)

// Registry is the display-facing catalogue of known classification labels.
//
// The registry never touches canvas objects: removing or renaming a label
// does not retag objects currently carrying it - reconciling (or deliberately
// not reconciling) those tags is the host application's decision.
//
// All mutations follow a user-input deduplication policy: empty or
// whitespace-only names, duplicates, and no-op renames are silently ignored
// rather than treated as errors. Each mutation reports whether it changed
// the registry.
type Registry struct {
	labels []string
}

// NewRegistry creates a registry seeded with the given labels, applying the
// same trim/dedupe policy as Add.
func NewRegistry(labels ...string) *Registry {
	r := &Registry{}
	for _, l := range labels {
		r.Add(l)
	}
	return r
}

// Labels returns the registered labels in registration order.
func (r *Registry) Labels() []string {
	return slices.Clone(r.labels)
}

// Has reports whether the exact label is registered.
func (r *Registry) Has(name string) bool {
	return slices.Contains(r.labels, name)
}

// Add registers a new label. The name is trimmed; empty and duplicate names
// are no-ops. Returns true if the registry changed.
func (r *Registry) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || r.Has(name) {
		return false
	}
	r.labels = append(r.labels, name)
	return true
}

// Remove unregisters a label. Returns true if the registry changed.
// Objects tagged with the label keep their tag.
func (r *Registry) Remove(name string) bool {
	i := slices.Index(r.labels, name)
	if i < 0 {
		return false
	}
	r.labels = slices.Delete(r.labels, i, i+1)
	return true
}

// Rename replaces oldName with newName in place, keeping registration order.
// The replacement is trimmed; empty replacements, unknown old names, no-op
// renames, and collisions with an existing label are no-ops. Returns true if
// the registry changed. Objects tagged with the old label keep their tag.
func (r *Registry) Rename(oldName, newName string) bool {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName || r.Has(newName) {
		return false
	}
	i := slices.Index(r.labels, oldName)
	if i < 0 {
		return false
	}
	r.labels[i] = newName
	return true
}
