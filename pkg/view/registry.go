package view

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-sdui/pkg/schema"
)

// Builder converts one component into a view. Builders run on the UI
// goroutine and must not block.
type Builder func(b *BuildContext, component schema.Component) (View, error)

// Registry stores builders by component type.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry holding the built-in builders.
func NewRegistry() *Registry {
	return &Registry{
		builders: map[string]Builder{
			schema.TypeImage:     buildImage,
			schema.TypeText:      buildText,
			schema.TypeButton:    buildButton,
			schema.TypeContainer: buildContainer,
			schema.TypeTouchable: buildTouchable,
		},
	}
}

// Register adds a builder for a component type. Duplicate types return an
// error.
func (r *Registry) Register(componentType string, builder Builder) error {
	key := schema.NormalizeTag(componentType)
	if key == "" {
		return fmt.Errorf("view: component type is required")
	}
	if builder == nil {
		return fmt.Errorf("view: builder for %q is required", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[key]; exists {
		return fmt.Errorf("view: builder %q already registered", key)
	}
	r.builders[key] = builder
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(componentType string, builder Builder) {
	if err := r.Register(componentType, builder); err != nil {
		panic(err)
	}
}

// Get returns the builder for componentType.
func (r *Registry) Get(componentType string) (Builder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	builder, ok := r.builders[schema.NormalizeTag(componentType)]
	return builder, ok
}

// List returns the registered component types, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
