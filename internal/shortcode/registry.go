package shortcode

import (
	"sort"
	"strings"
	"sync"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// Registry is the thread-safe in-memory implementation of interfaces.ShortcodeRegistry.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]interfaces.DirectiveDefinition
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]interfaces.DirectiveDefinition),
	}
}

// DefaultRegistry returns a registry seeded with the built-in directive catalogue.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, def := range BuiltInDefinitions() {
		// Built-ins have distinct names; Register cannot fail here.
		_ = registry.Register(def)
	}
	return registry
}

// Register stores a definition if the name is not already taken.
func (r *Registry) Register(def interfaces.DirectiveDefinition) error {
	name := strings.TrimSpace(strings.ToLower(def.Name))
	if name == "" {
		return ErrInvalidDefinition
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[name]; exists {
		return ErrDuplicateDefinition
	}

	r.definitions[name] = def
	return nil
}

// Get returns the stored definition.
func (r *Registry) Get(name string) (interfaces.DirectiveDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[strings.ToLower(name)]
	return def, ok
}

// List returns all registered definitions in name order.
func (r *Registry) List() []interfaces.DirectiveDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]interfaces.DirectiveDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Remove deletes the definition if it exists.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.definitions, strings.ToLower(name))
}

var _ interfaces.ShortcodeRegistry = (*Registry)(nil)
