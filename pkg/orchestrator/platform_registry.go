package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-sdui/pkg/action"
	"github.com/goliatone/go-sdui/pkg/uithread"
	"github.com/goliatone/go-sdui/pkg/view"
)

// Surface is the per-render state a platform hands to the pipeline.
type Surface struct {
	Factory   view.Factory
	Presenter action.Presenter
	// Navigator is optional; navigation actions are no-ops without one.
	Navigator action.Navigator
	// Poster defaults to uithread.Inline.
	Poster uithread.Poster
	// Images pins the remote image loader for this surface. When set it
	// takes precedence over WithImageLoader; surfaces with an Inline poster
	// cannot apply results that arrive after Output has run.
	Images view.ImageLoader
	// Output serialises the rendered tree. Nil for interactive-only
	// platforms.
	Output func(root view.View, opts OutputOptions) ([]byte, error)
}

// OutputOptions is passed to Surface.Output.
type OutputOptions struct {
	Title string
}

// Platform creates a fresh Surface for every render.
type Platform interface {
	Name() string
	NewSurface() (*Surface, error)
}

// PlatformRegistry stores platforms by name.
type PlatformRegistry struct {
	mu        sync.RWMutex
	platforms map[string]Platform
}

// NewPlatformRegistry creates an empty platform registry.
func NewPlatformRegistry() *PlatformRegistry {
	return &PlatformRegistry{
		platforms: make(map[string]Platform),
	}
}

// Register adds a platform by its Name(). Duplicate names return an error.
func (r *PlatformRegistry) Register(platform Platform) error {
	if platform == nil {
		return fmt.Errorf("orchestrator: platform is required")
	}
	name := normalizePlatformName(platform.Name())
	if name == "" {
		return fmt.Errorf("orchestrator: platform name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.platforms[name]; exists {
		return fmt.Errorf("orchestrator: platform %q already registered", name)
	}

	r.platforms[name] = platform
	return nil
}

// MustRegister panics on registration failure.
func (r *PlatformRegistry) MustRegister(platform Platform) {
	if err := r.Register(platform); err != nil {
		panic(err)
	}
}

// Get retrieves a platform by name.
func (r *PlatformRegistry) Get(name string) (Platform, error) {
	key := normalizePlatformName(name)
	if key == "" {
		return nil, fmt.Errorf("orchestrator: platform name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	platform, ok := r.platforms[key]
	if !ok {
		return nil, fmt.Errorf("orchestrator: platform %q not found", key)
	}
	return platform, nil
}

// List returns a sorted list of platform names.
func (r *PlatformRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a platform is registered.
func (r *PlatformRegistry) Has(name string) bool {
	key := normalizePlatformName(name)
	if key == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.platforms[key]
	return ok
}

func normalizePlatformName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
