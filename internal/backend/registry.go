package backend

import (
	"fmt"
	"sync"
)

// Registry maps conversion routes to exporters.
type Registry struct {
	exporters map[Route]Exporter
	mu        sync.RWMutex
}

// NewRegistry creates a new exporter registry.
func NewRegistry() *Registry {
	return &Registry{
		exporters: make(map[Route]Exporter),
	}
}

// Register adds an exporter for route.
func (r *Registry) Register(route Route, e Exporter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.exporters[route]; ok {
		return fmt.Errorf("%w: %s (%s)", ErrAlreadyRegistered, route, existing.Name())
	}

	r.exporters[route] = e
	return nil
}

// Get retrieves the exporter for route.
func (r *Registry) Get(route Route) (Exporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.exporters[route]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, route)
	}

	return e, nil
}

// Routes returns the number of registered routes.
func (r *Registry) Routes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.exporters)
}
