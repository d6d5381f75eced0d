// Package registry provides an in-memory, thread-safe store of resolved CRS
// definitions, keyed by name. It is the catalog boundary of the engine:
// callers resolve names here and hand the resulting CRS values to
// core.NewTransform.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/geodesyworks/reproj/model"
)

// Registry is an in-memory, thread-safe store of CRS definitions.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*model.CRS
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*model.CRS)}
}

// Register adds a CRS definition. It returns an error if the name is empty or
// already taken, or if the CRS is not fully resolved; an unresolved CRS
// would only fail later, at transform construction, with less context.
func (r *Registry) Register(crs *model.CRS) error {
	if crs == nil {
		return fmt.Errorf("registry: nil CRS")
	}
	if crs.Name == "" {
		return fmt.Errorf("registry: CRS has no name")
	}
	if !crs.IsResolved() {
		return fmt.Errorf("registry: CRS %q is not fully resolved", crs.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[crs.Name]; exists {
		return fmt.Errorf("registry: CRS %q already registered", crs.Name)
	}
	r.byName[crs.Name] = crs
	return nil
}

// Get returns the CRS registered under name.
func (r *Registry) Get(name string) (*model.CRS, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	crs, ok := r.byName[name]
	return crs, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered CRS definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
