package provider

import (
	"doc-quiz/internal/domain"
)

// Registry holds adapters in priority order. It is read-only once the
// server has started.
type Registry struct {
	adapters []domain.ProviderAdapter
	byType   map[domain.ProviderType]domain.ProviderAdapter
}

func NewRegistry(adapters ...domain.ProviderAdapter) *Registry {
	r := &Registry{byType: make(map[domain.ProviderType]domain.ProviderAdapter)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register appends an adapter. Registering a type twice replaces the earlier
// adapter in place, keeping its priority.
func (r *Registry) Register(a domain.ProviderAdapter) {
	if _, exists := r.byType[a.Type()]; exists {
		for i, existing := range r.adapters {
			if existing.Type() == a.Type() {
				r.adapters[i] = a
			}
		}
	} else {
		r.adapters = append(r.adapters, a)
	}
	r.byType[a.Type()] = a
}

// Select returns the requested adapter. It never substitutes a different one.
func (r *Registry) Select(requested domain.ProviderType) (domain.ProviderAdapter, error) {
	a, ok := r.byType[requested]
	if !ok {
		return nil, domain.NewUnsupportedProviderError(string(requested))
	}
	if !a.IsAvailable() {
		return nil, domain.NewProviderUnavailableError(requested)
	}
	return a, nil
}

// FirstAvailable returns the highest-priority available adapter.
func (r *Registry) FirstAvailable() (domain.ProviderAdapter, bool) {
	for _, a := range r.adapters {
		if a.IsAvailable() {
			return a, true
		}
	}
	return nil, false
}

// SelectOrFirst selects requested when set and falls back to priority order otherwise.
func (r *Registry) SelectOrFirst(requested domain.ProviderType) (domain.ProviderAdapter, error) {
	if requested != "" {
		return r.Select(requested)
	}
	a, ok := r.FirstAvailable()
	if !ok {
		return nil, domain.NewNoProviderAvailableError()
	}
	return a, nil
}

// Adapters returns the adapters in priority order.
func (r *Registry) Adapters() []domain.ProviderAdapter {
	out := make([]domain.ProviderAdapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}
