package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores renderers by platform, providing discovery and duplication
// safeguards.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer by its Platform(). Duplicate platforms return an
// error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	platform := renderer.Platform()
	if platform == "" {
		return fmt.Errorf("render: renderer platform is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[platform]; exists {
		return fmt.Errorf("render: renderer %q already registered", platform)
	}

	r.renderers[platform] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves the renderer for platform.
func (r *Registry) Get(platform string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[platform]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrRendererNotFound, platform)
	}
	return renderer, nil
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(platform string) Renderer {
	renderer, err := r.Get(platform)
	if err != nil {
		panic(err)
	}
	return renderer
}

// List returns a sorted list of platforms.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered for platform.
func (r *Registry) Has(platform string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[platform]
	return ok
}
